//go:build !sqlite

package store

func newSQLiteStore(_ string) (Store, error) {
	return nil, ErrBackend{Kind: "sqlite", Err: ErrSQLiteUnavailable}
}
