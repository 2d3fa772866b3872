package document

import "github.com/bhdao/bhdao/base"

type DocumentCreated struct {
	Creator  base.Address `json:"creator"`
	Document uint64       `json:"document"`
}

func (DocumentCreated) EventName() string {
	return "DocumentCreated"
}

// DocumentStatusUpdated carries the numeric code of the new status.
type DocumentStatusUpdated struct {
	Document uint64 `json:"document"`
	Status   uint8  `json:"status"`
}

func (DocumentStatusUpdated) EventName() string {
	return "DocumentStatusUpdated"
}
