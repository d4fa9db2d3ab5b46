package httpv1

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Egor213/LogiSense/internal/domain"
	errorsUtils "github.com/Egor213/LogiSense/pkg/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/labstack/echo/v4"
)

// readBody returns the decoded request body. limit caps the decoded size;
// zero means unlimited.
func readBody(req *http.Request, limit int64) ([]byte, error) {
	var (
		body    io.Reader = req.Body
		encoded bool
	)

	switch strings.ToLower(strings.TrimSpace(req.Header.Get(echo.HeaderContentEncoding))) {
	case "", "identity":
	case "gzip":
		zr, err := gzip.NewReader(req.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: bad gzip stream: %v", domain.ErrDataFormat, err)
		}
		defer zr.Close()
		body, encoded = zr, true
	case "zstd":
		zr, err := zstd.NewReader(req.Body, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, errorsUtils.WrapPathErr(err)
		}
		defer zr.Close()
		body, encoded = zr, true
	default:
		return nil, echo.ErrUnsupportedMediaType
	}

	if limit > 0 {
		body = io.LimitReader(body, limit+1)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return nil, he
		}
		if encoded {
			return nil, fmt.Errorf("%w: corrupt compressed body: %v", domain.ErrDataFormat, err)
		}
		return nil, errorsUtils.WrapPathErr(err)
	}

	if limit > 0 && int64(len(data)) > limit {
		return nil, echo.ErrStatusRequestEntityTooLarge
	}
	return data, nil
}
