package providers

import (
	"fmt"

	"github.com/gookit/validate"

	"kgsite/internal/storage"
	"kgsite/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %s", v.Errors.One())
	}

	s := cv.conf.Storage
	if s.Driver != storage.DriverMemory && s.Path == "" {
		return fmt.Errorf("invalid config: storage.path is required for driver %q", s.Driver)
	}
	if s.Driver == storage.DriverFile && s.SaveInterval <= 0 {
		return fmt.Errorf("invalid config: storage.saveInterval must be positive for the file driver")
	}
	if a := cv.conf.Analytics; a.MaxRange > 0 && a.DefaultRange > a.MaxRange {
		return fmt.Errorf("invalid config: analytics.defaultRange %d exceeds maxRange %d", a.DefaultRange, a.MaxRange)
	}
	return nil
}
