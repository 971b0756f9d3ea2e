package fetcher

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Tickers are 1-15 characters of letters, digits, dot, dash, caret or equals
// (BRK.B, ^GSPC, EURUSD=X).
var tickerRe = regexp.MustCompile(`^[A-Za-z0-9^][A-Za-z0-9.\-=^]{0,14}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("ticker", func(fl validator.FieldLevel) bool {
		return tickerRe.MatchString(fl.Field().String())
	})
	return v
}

// InvalidRequestError reports malformed input to a fetch operation.
type InvalidRequestError struct {
	Field  string
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type tickerInput struct {
	Ticker string `validate:"required,ticker"`
}

type rangeInput struct {
	Ticker string `validate:"required,ticker"`
	Start  string `validate:"required,datetime=2006-01-02"`
	End    string `validate:"required,datetime=2006-01-02"`
}

// normalizeTicker trims and upper-cases t and checks its shape.
func normalizeTicker(t string) (string, error) {
	in := tickerInput{Ticker: strings.ToUpper(strings.TrimSpace(t))}
	if err := check(validate.Struct(in)); err != nil {
		return "", err
	}
	return in.Ticker, nil
}

func checkRange(ticker, start, end string) (rangeInput, error) {
	in := rangeInput{
		Ticker: strings.ToUpper(strings.TrimSpace(ticker)),
		Start:  strings.TrimSpace(start),
		End:    strings.TrimSpace(end),
	}
	if err := check(validate.Struct(in)); err != nil {
		return rangeInput{}, err
	}
	// Both are YYYY-MM-DD, so string order is date order.
	if in.End < in.Start {
		return rangeInput{}, &InvalidRequestError{Field: "end", Reason: "must not be before start"}
	}
	return in, nil
}

// check converts the first validator failure into an InvalidRequestError.
func check(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return &InvalidRequestError{Field: field, Reason: "must not be empty"}
	case "ticker":
		return &InvalidRequestError{Field: field, Reason: fmt.Sprintf("%q is not a ticker symbol", fe.Value())}
	case "datetime":
		return &InvalidRequestError{Field: field, Reason: fmt.Sprintf("%q is not a YYYY-MM-DD date", fe.Value())}
	default:
		return &InvalidRequestError{Field: field, Reason: "failed " + fe.Tag()}
	}
}
