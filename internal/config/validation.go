package config

import (
	"fmt"

	"github.com/gobwas/glob"

	"github.com/kevinreber/sitecfg/internal/foundation"
	"github.com/kevinreber/sitecfg/internal/render"
)

var configValidator = foundation.NewValidatorChain(
	validateVersion,
	validateOutput,
	validateDocs,
	func(c *Config) foundation.ValidationResult {
		return c.Site.Validate().Prefixed("site")
	},
)

// ValidateConfig checks the resolved configuration, including the site record.
func ValidateConfig(cfg *Config) error {
	return configValidator.Validate(cfg).ToError()
}

func validateVersion(c *Config) foundation.ValidationResult {
	return foundation.Check(c.Version == CurrentVersion, "version", "unsupported",
		fmt.Sprintf("unsupported configuration version %q (expected %q)", c.Version, CurrentVersion))
}

func validateOutput(c *Config) foundation.ValidationResult {
	_, err := render.ParseFormat(string(c.Output.Format))
	return foundation.Check(err == nil, "output.format", "one_of",
		fmt.Sprintf("output format %q is not supported", c.Output.Format)).
		Combine(foundation.Check(c.Output.Path != "", "output.path", "required", "output path is required"))
}

func validateDocs(c *Config) foundation.ValidationResult {
	res := foundation.Check(c.Docs.Dir != "", "docs.dir", "required", "docs directory is required").
		Combine(foundation.Check(c.Docs.BlogDir != "", "docs.blog_dir", "required", "blog directory is required"))
	for i, p := range c.Docs.Exclude {
		if _, err := glob.Compile(p, '/'); err != nil {
			res = res.Combine(foundation.Invalid(foundation.NewValidationError(
				fmt.Sprintf("docs.exclude[%d]", i), "glob", fmt.Sprintf("invalid glob pattern %q: %v", p, err))))
		}
	}
	return res
}
