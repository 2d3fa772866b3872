package isvalid

import "github.com/bhdao/bhdao/util"

var InvalidError = util.NewError("invalid")

type IsValider interface {
	IsValid([]byte) error
}
