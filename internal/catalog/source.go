package catalog

import "io"

// OpenSource picks the catalog source, first match wins: a Postgres DSN, a
// remote storefront URL, a file, and finally the bundled catalog. The
// returned closer is never nil.
func OpenSource(file, dsn, remoteURL string) (Source, io.Closer, error) {
	switch {
	case dsn != "":
		s, err := OpenPostgres(dsn)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case remoteURL != "":
		return NewHTTPStore(remoteURL), nopCloser{}, nil
	case file != "":
		return NewFileStore(file), nopCloser{}, nil
	default:
		return NewDefaultStore(), nopCloser{}, nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
