package pdf

import (
	"errors"

	"github.com/cokeke26/cotizador/internal/domain/quote"
)

// ErrLayoutOverflow reports a single unbreakable content block taller than
// one page's content area. The build fails whole; no partial bytes are
// ever returned.
var ErrLayoutOverflow = errors.New("quote content block exceeds page capacity")

type Generator interface {
	Generate(q quote.Quote) ([]byte, error)
}
