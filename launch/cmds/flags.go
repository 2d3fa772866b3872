package cmds

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/bhdao/bhdao/base"
)

// FileLoad reads the content of file; "-" reads stdin.
type FileLoad []byte

func (v FileLoad) MarshalText() ([]byte, error) {
	return []byte(v), nil
}

func (v *FileLoad) UnmarshalText(b []byte) error {
	var body []byte
	if bytes.Equal(bytes.TrimSpace(b), []byte("-")) {
		c, err := io.ReadAll(os.Stdin)
		if err != nil {
			return errors.Wrap(err, "failed to read stdin")
		}
		body = c
	} else if c, err := os.ReadFile(filepath.Clean(string(b))); err != nil {
		return err
	} else {
		body = c
	}

	if len(body) < 1 {
		return errors.Errorf("empty file")
	}

	*v = body

	return nil
}

func (v FileLoad) Bytes() []byte {
	return []byte(v)
}

type RoleFlag base.Role

func (v *RoleFlag) UnmarshalText(b []byte) error {
	r, err := base.ParseRole(string(b))
	if err != nil {
		return err
	}

	*v = RoleFlag(r)

	return nil
}

func (v RoleFlag) Role() base.Role {
	return base.Role(v)
}

// TrackFlag is "qualification" or "verification".
type TrackFlag base.VoteType

func (v *TrackFlag) UnmarshalText(b []byte) error {
	vt, err := base.ParseVoteType(string(b))
	if err != nil {
		return err
	}

	*v = TrackFlag(vt)

	return nil
}

func (v TrackFlag) VoteType() base.VoteType {
	return base.VoteType(v)
}

// ChoiceFlag accepts yes/no and the usual boolean strings.
type ChoiceFlag bool

func (v *ChoiceFlag) UnmarshalText(b []byte) error {
	switch s := strings.ToLower(strings.TrimSpace(string(b))); s {
	case "yes", "y":
		*v = true
	case "no", "n":
		*v = false
	default:
		i, err := strconv.ParseBool(s)
		if err != nil {
			return errors.Errorf("invalid choice, %q", s)
		}

		*v = ChoiceFlag(i)
	}

	return nil
}

// StatusFlag is a document status name or its numeric code.
type StatusFlag uint8

func (v *StatusFlag) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if i, err := strconv.ParseUint(s, 10, 8); err == nil {
		*v = StatusFlag(i)

		return nil
	}

	st, err := base.ParseDocumentStatus(s)
	if err != nil {
		return err
	}

	*v = StatusFlag(st.Code())

	return nil
}
