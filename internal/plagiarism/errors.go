package plagiarism

import (
	"errors"
	"fmt"

	"github.com/RishiKendai/winnow/internal/models"
)

var (
	// ErrInvalidOptions is returned by NewComparison for unusable settings.
	ErrInvalidOptions = errors.New("invalid comparison options")

	// ErrTokenizerContract marks output from a tokenizer or hash filter that
	// breaks the (tokens, mapping) contract.
	ErrTokenizerContract = errors.New("tokenizer contract violation")
)

// ContractViolationError describes where a file's tokenization broke the
// contract. Start and Stop are the token indices of the offending
// fingerprint, or -1 when the violation is not tied to one.
type ContractViolationError struct {
	File   *models.File
	Start  int
	Stop   int
	Reason string
}

func (e *ContractViolationError) Error() string {
	path := "<nil>"
	if e.File != nil {
		path = e.File.Path
	}
	if e.Start < 0 {
		return fmt.Sprintf("%s in %s: %s", ErrTokenizerContract, path, e.Reason)
	}
	return fmt.Sprintf("%s in %s at tokens %d..%d: %s", ErrTokenizerContract, path, e.Start, e.Stop, e.Reason)
}

func (e *ContractViolationError) Unwrap() error {
	return ErrTokenizerContract
}
