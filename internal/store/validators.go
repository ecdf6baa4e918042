package store

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// NonEmpty rejects anything but a non-blank string.
func NonEmpty(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("want a string, got %T", value)
	}
	if strings.TrimSpace(s) == "" {
		return errors.New("must not be empty")
	}
	return nil
}

// HTTPURL accepts absolute http or https URLs with a host.
func HTTPURL(value any) error {
	if err := NonEmpty(value); err != nil {
		return err
	}
	u, err := url.Parse(value.(string))
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme %q is not http or https", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}
