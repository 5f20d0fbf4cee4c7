package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/hyperlane-deploy/deploy-api/models"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/go-playground/validator.v9"
)

// githubNameExp matches the characters and length allowed in GitHub user and
// organization names. Hyphen placement is checked by validateGitHubName.
var githubNameExp *regexp.Regexp = regexp.MustCompile("^[A-Za-z0-9-]{1,39}$")

// hexStringExp matches a 0x prefixed hex string
var hexStringExp *regexp.Regexp = regexp.MustCompile("^0x[0-9a-fA-F]*$")

// IsGitHubName returns true if s is a valid GitHub user or organization name:
// 1 to 39 alphanumeric or hyphen characters, which do not start or end with a
// hyphen and do not contain two hyphens in a row.
func IsGitHubName(s string) bool {
	return githubNameExp.MatchString(s) &&
		!strings.HasPrefix(s, "-") &&
		!strings.HasSuffix(s, "-") &&
		!strings.Contains(s, "--")
}

// IsHexString returns true if s is a 0x prefixed hex string with an even number of digits
func IsHexString(s string) bool {
	return hexStringExp.MatchString(s) && len(s)%2 == 0
}

// validateGitHubName is a custom validation which ensures a string is a GitHub name.
// Only works with fields which are strings.
func validateGitHubName(fl validator.FieldLevel) bool {
	return IsGitHubName(fl.Field().String())
}

// IsEthAddress returns true if s is a 0x prefixed 20 byte hex address
func IsEthAddress(s string) bool {
	return strings.HasPrefix(s, "0x") && common.IsHexAddress(s)
}

// validateTokenType ensures that a field matches one of models.TokenTypes
func validateTokenType(fl validator.FieldLevel) bool {
	t := models.TokenType(fl.Field().String())
	for _, known := range models.TokenTypes {
		if t == known {
			return true
		}
	}

	return false
}

// validateTokenStandard ensures that a field matches one of models.TokenStandards
func validateTokenStandard(fl validator.FieldLevel) bool {
	s := models.TokenStandard(fl.Field().String())
	for _, known := range models.TokenStandards {
		if s == known {
			return true
		}
	}

	return false
}

// validateTokenRouterConfig requires collateral style routers to name the token they wrap
func validateTokenRouterConfig(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(models.TokenRouterConfig)

	if cfg.Type.RequiresToken() && len(cfg.Token) == 0 {
		sl.ReportError(cfg.Token, "Token", "token", "required_for_type", string(cfg.Type))
	}
}

// New returns a validator with all the custom validations registered
func New() *validator.Validate {
	validate := validator.New()

	// Report JSON names so errors refer to fields the way submitters wrote them
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("github_name", validateGitHubName)
	validate.RegisterValidation("token_type", validateTokenType)
	validate.RegisterValidation("token_standard", validateTokenStandard)
	validate.RegisterStructValidation(validateTokenRouterConfig, models.TokenRouterConfig{})

	return validate
}
