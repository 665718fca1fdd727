// Package ui implements the interactive result browser for pdfscout using Bubbletea.
package ui
