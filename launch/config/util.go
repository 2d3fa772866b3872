package config

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

func ParseURLString(s string, allowEmpty bool) (*url.URL, error) {
	if s = strings.TrimSpace(s); len(s) < 1 {
		if !allowEmpty {
			return nil, errors.Errorf("empty url string")
		}

		return nil, nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid url, %q", s)
	}

	return u, nil
}
