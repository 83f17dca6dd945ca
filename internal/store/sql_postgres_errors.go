package store

import "github.com/jackc/pgerrcode"

// ErrorClassificator maps driver-specific errors onto the store's sentinel
// errors so the service layer never inspects PostgreSQL error codes.
type ErrorClassificator interface {
	Classify(err error) error
}

type postgresErrorClassifier struct{}

func NewPostgresErrorClassifier() ErrorClassificator {
	return &postgresErrorClassifier{}
}

// Classify translates recognised PostgreSQL error codes; everything else is
// passed through unchanged.
func (c *postgresErrorClassifier) Classify(err error) error {
	if err == nil {
		return nil
	}

	switch postgresError(err) {
	case pgerrcode.UniqueViolation:
		return ErrEmailAlreadyExists
	default:
		return err
	}
}
