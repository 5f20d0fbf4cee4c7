package parsing

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/hyperlane-deploy/deploy-api/models"
	"github.com/hyperlane-deploy/deploy-api/validation"

	"gopkg.in/go-playground/validator.v9"
)

// Multipart form field names of a pull request submission
const (
	FieldPRBody                = "prBody"
	FieldSignatureVerification = "signatureVerification"
	FieldLogo                  = "logo"
)

// whyMap maps validation tags to user readable reasons for the validation failing
var whyMap = map[string]string{
	"required":          "a value must be provided",
	"github_name":       "must be a valid GitHub username",
	"required_for_type": "a value must be provided for this token type",
	"token_type":        "unknown token type",
	"token_standard":    "unknown token standard",
}

// RequestParser turns pull request submission forms into models.SubmissionRequests
type RequestParser struct {
	// Validate validates decoded form fields, see validation.New
	Validate *validator.Validate

	// DeployConfig validates deploy config file contents
	DeployConfig validation.ContentValidator

	// WarpConfig validates warp config file contents
	WarpConfig validation.ContentValidator

	// MaxMemory is the number of bytes of the form held in memory, the rest is
	// stored in temporary files
	MaxMemory int64
}

// NewRequestParser creates a RequestParser with the default validators
func NewRequestParser(maxMemory int64) RequestParser {
	validate := validation.New()

	return RequestParser{
		Validate:     validate,
		DeployConfig: validation.DeployConfigValidator{Validator: validate},
		WarpConfig:   validation.WarpConfigValidator{Validator: validate},
		MaxMemory:    maxMemory,
	}
}

// Parse reads a multipart pull request submission. Returned errors which the submitter
// caused are ParseErrors.
func (p RequestParser) Parse(r *http.Request) (*models.SubmissionRequest,
	*models.SignatureVerification, error) {

	// {{{1 Read form
	if err := r.ParseMultipartForm(p.MaxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, ParseError{
				What:          "request",
				Why:           fmt.Sprintf("body must be smaller than %d bytes", tooLarge.Limit),
				InternalError: err,
			}
		}

		return nil, nil, ParseError{
			What:          "request",
			Why:           "body must be a multipart form",
			InternalError: err,
		}
	}

	// {{{1 prBody
	var prBody models.PRBody
	if err := p.decodeField(r, FieldPRBody, &prBody); err != nil {
		return nil, nil, err
	}

	// {{{1 signatureVerification
	var sigVerification models.SignatureVerification
	if err := p.decodeField(r, FieldSignatureVerification, &sigVerification); err != nil {
		return nil, nil, err
	}

	// {{{1 Config contents
	deployConfig, err := p.canonicalContent(p.DeployConfig, prBody.DeployConfig.Content)
	if err != nil {
		return nil, nil, err
	}

	warpConfig, err := p.canonicalContent(p.WarpConfig, prBody.WarpConfig.Content)
	if err != nil {
		return nil, nil, err
	}

	submission := models.SubmissionRequest{
		DeployConfigFile: models.ConfigFile{
			Path:    prBody.DeployConfig.Path,
			Content: string(deployConfig),
		},
		WarpConfigFile: models.ConfigFile{
			Path:    prBody.WarpConfig.Path,
			Content: string(warpConfig),
		},
		WarpRouteID:  prBody.WarpRouteID,
		Organization: prBody.Organization,
		Username:     prBody.Username,
	}

	// {{{1 Logo
	logoFile, _, err := r.FormFile(FieldLogo)
	if err == http.ErrMissingFile {
		return &submission, &sigVerification, nil
	} else if err != nil {
		return nil, nil, ParseError{
			What:          "logo",
			Why:           "could not be read",
			InternalError: err,
		}
	}
	defer logoFile.Close()

	logo, err := ReadLogo(logoFile, TokenSymbol(warpConfig, submission.WarpRouteID))
	if err != nil {
		return nil, nil, err
	}
	submission.Logo = logo

	return &submission, &sigVerification, nil
}

// decodeField decodes a JSON encoded form field and validates it
func (p RequestParser) decodeField(r *http.Request, field string, dest interface{}) error {
	raw := r.FormValue(field)
	if len(raw) == 0 {
		return ParseError{
			What: field,
			Why:  "a value must be provided",
		}
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return ParseError{
			What:          field,
			Why:           "must be valid JSON",
			InternalError: err,
		}
	}

	if err := p.Validate.Struct(dest); err != nil {
		return fieldError(field, err)
	}

	return nil
}

// fieldError converts a struct validation error into a ParseError which names the first
// offending field relative to the form field
func fieldError(field string, err error) ParseError {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return ParseError{
			What:          field,
			Why:           "could not be validated",
			InternalError: err,
		}
	}

	fieldErr := fieldErrs[0]

	why, ok := whyMap[fieldErr.Tag()]
	if !ok {
		why = fmt.Sprintf("failed the %s check", fieldErr.Tag())
	}

	return ParseError{
		What: fmt.Sprintf("%s.%s", field, trimNamespace(fieldErr.Namespace())),
		Why:  why,
	}
}

// trimNamespace removes the leading struct name from a validator namespace, ex.,
// PRBody.deployConfig.path becomes deployConfig.path
func trimNamespace(ns string) string {
	for i, c := range ns {
		if c == '.' {
			return ns[i+1:]
		}
	}

	return ns
}

// canonicalContent validates a config file's content and returns it in canonical form
func (p RequestParser) canonicalContent(v validation.ContentValidator, content string) ([]byte, error) {
	if err := v.Validate([]byte(content)); err != nil {
		return nil, ParseError{
			What:          fmt.Sprintf("%s content", v.Name()),
			InternalError: err,
		}
	}

	canonical, err := Canonicalize([]byte(content))
	if err != nil {
		return nil, ParseError{
			What:          fmt.Sprintf("%s content", v.Name()),
			InternalError: err,
		}
	}

	return canonical, nil
}
