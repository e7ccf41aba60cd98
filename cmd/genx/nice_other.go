//go:build !unix

package main

func nice() error {
	return nil
}
