package fetcher

import (
	"encoding/hex"
	"io"
	"net/http"
	"strings"
	"time"

	logger "github.com/multiversx/mx-chain-logger-go"
	pkgErrors "github.com/pkg/errors"
)

var log = logger.GetOrCreate("simulation/fetcher")

const minRequestTimeout = time.Second

// ArgsSourceFetcher holds the arguments required for creating a new source fetcher
type ArgsSourceFetcher struct {
	RequestTimeout time.Duration
}

// sourceFetcher retrieves standard contract bytecode from an external source
// keyed by URL. Responses are expected to carry hex-encoded bytecode.
type sourceFetcher struct {
	httpClient *http.Client
}

// NewSourceFetcher returns a new instance of sourceFetcher
func NewSourceFetcher(args ArgsSourceFetcher) (*sourceFetcher, error) {
	if args.RequestTimeout < minRequestTimeout {
		return nil, pkgErrors.Wrapf(ErrInvalidRequestTimeout,
			"provided %v, minimum %v", args.RequestTimeout, minRequestTimeout)
	}

	return &sourceFetcher{
		httpClient: &http.Client{
			Timeout: args.RequestTimeout,
		},
	}, nil
}

// FetchContractCode retrieves and decodes the bytecode of the named standard
// contract. Any transport, status or decoding failure wraps ErrSourceUnavailable.
func (sf *sourceFetcher) FetchContractCode(name string, url string) ([]byte, error) {
	if len(url) == 0 {
		return nil, pkgErrors.Wrapf(ErrSourceUnavailable, "empty url for contract %s", name)
	}

	log.Debug("fetching standard contract source", "name", name, "url", url)

	response, err := sf.httpClient.Get(url)
	if err != nil {
		return nil, pkgErrors.Wrapf(ErrSourceUnavailable, "contract %s: %v", name, err)
	}
	defer func() {
		errClose := response.Body.Close()
		log.LogIfError(errClose)
	}()

	if response.StatusCode != http.StatusOK {
		return nil, pkgErrors.Wrapf(ErrSourceUnavailable,
			"contract %s: unexpected status %d from %s", name, response.StatusCode, url)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, pkgErrors.Wrapf(ErrSourceUnavailable, "contract %s: %v", name, err)
	}

	encoded := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(string(body)), "0x"))
	code, err := hex.DecodeString(encoded)
	if err != nil {
		return nil, pkgErrors.Wrapf(ErrSourceUnavailable, "contract %s: malformed bytecode: %v", name, err)
	}
	if len(code) == 0 {
		return nil, pkgErrors.Wrapf(ErrSourceUnavailable, "contract %s: empty bytecode", name)
	}

	return code, nil
}

// IsInterfaceNil returns true if there is no value under the interface
func (sf *sourceFetcher) IsInterfaceNil() bool {
	return sf == nil
}
