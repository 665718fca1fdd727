package detect

import (
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// IsValidPDF reports whether the file parses as a PDF document under
// relaxed validation. It reads the whole file, so callers should check the
// header first.
func IsValidPDF(path string) bool {
	return Validate(path) == nil
}

// Validate runs relaxed structural validation on the file at path
func Validate(path string) error {
	// pdfcpu otherwise installs a config directory under the user's home
	disableConfigDir.Do(api.DisableConfigDir)

	// ValidateFile mutates its configuration, so each call gets its own
	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed
	return api.ValidateFile(path, conf)
}
