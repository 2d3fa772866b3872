package token

import "github.com/bhdao/bhdao/base"

type CollectionCreated struct {
	Collection base.CollectionID `json:"collection"`
}

func (CollectionCreated) EventName() string {
	return "CollectionCreated"
}

type TokenMinted struct {
	Collection base.CollectionID `json:"collection"`
	Token      uint32            `json:"token"`
	Owner      base.Address      `json:"owner"`
}

func (TokenMinted) EventName() string {
	return "TokenMinted"
}

type TokenBurned struct {
	Collection base.CollectionID `json:"collection"`
	Token      uint32            `json:"token"`
	Owner      base.Address      `json:"owner"`
}

func (TokenBurned) EventName() string {
	return "TokenBurned"
}
