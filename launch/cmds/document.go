package cmds

import (
	"bytes"
	"context"

	"github.com/pkg/errors"

	"github.com/bhdao/bhdao/base"
	"github.com/bhdao/bhdao/document"
	"github.com/bhdao/bhdao/util/valuehash"
)

type DocumentCommand struct {
	Create DocumentCreateCommand `cmd:"" help:"submit document"`
	Show   DocumentShowCommand   `cmd:"" help:"show document"`
	Status DocumentStatusCommand `cmd:"" help:"override document status"`
}

type DocumentCreateCommand struct {
	Title       string   `required:"" help:"title"`
	Description string   `required:"" help:"description"`
	Format      string   `required:"" help:"format, like pdf"`
	File        FileLoad `help:"document file; content hash is calculated from it; '-' is stdin" optional:""`
	Hash        string   `help:"content hash in base58" optional:""`
}

func (cmd *DocumentCreateCommand) contentHash() ([]byte, error) {
	switch {
	case len(cmd.File) > 0 && len(cmd.Hash) > 0:
		return nil, errors.Errorf("--file and --hash can not be used together")
	case len(cmd.File) > 0:
		h, err := valuehash.NewSHA256FromReader(bytes.NewReader(cmd.File.Bytes()))
		if err != nil {
			return nil, err
		}

		return h.Bytes(), nil
	case len(cmd.Hash) > 0:
		h, err := valuehash.ParseSHA256(cmd.Hash)
		if err != nil {
			return nil, err
		}

		return h.Bytes(), nil
	default:
		return nil, nil
	}
}

func (cmd *DocumentCreateCommand) Run(app *App) error {
	h, err := cmd.contentHash()
	if err != nil {
		return err
	}

	return app.Exec(func(ctx context.Context) (interface{}, error) {
		doc, err := app.DAO.CreateDocument(ctx, app.Caller,
			[]byte(cmd.Title), []byte(cmd.Description), []byte(cmd.Format), h)
		if err != nil {
			return nil, err
		}

		return newDocumentView(doc), nil
	})
}

type DocumentShowCommand struct {
	ID uint64 `arg:"" name:"id" help:"document id"`
}

func (cmd *DocumentShowCommand) Run(app *App) error {
	doc, found, err := app.DAO.Document(cmd.ID)
	switch {
	case err != nil:
		return err
	case !found:
		return document.DocumentNotFoundError.Errorf("document=%d", cmd.ID)
	}

	return app.Print(newDocumentView(doc))
}

type DocumentStatusCommand struct {
	ID     uint64     `arg:"" name:"id" help:"document id"`
	Status StatusFlag `arg:"" help:"status name or code"`
}

func (cmd *DocumentStatusCommand) Run(app *App) error {
	return app.Exec(func(ctx context.Context) (interface{}, error) {
		doc, err := app.DAO.UpdateDocumentStatus(ctx, app.Caller, cmd.ID, uint8(cmd.Status))
		if err != nil {
			return nil, err
		}

		return newDocumentView(doc), nil
	})
}

type documentView struct {
	ID          uint64       `json:"id"`
	Creator     base.Address `json:"creator"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Format      string       `json:"format"`
	ContentHash string       `json:"content_hash"`
	Status      string       `json:"status"`
	StatusCode  uint8        `json:"status_code"`
}

func newDocumentView(doc document.Document) documentView {
	h := string(doc.ContentHash)
	if len(doc.ContentHash) == valuehash.SHA256Size {
		var sh valuehash.SHA256
		copy(sh[:], doc.ContentHash)

		h = sh.String()
	}

	return documentView{
		ID:          doc.ID,
		Creator:     doc.Creator,
		Title:       string(doc.Title),
		Description: string(doc.Description),
		Format:      string(doc.Format),
		ContentHash: h,
		Status:      doc.Status.String(),
		StatusCode:  doc.Status.Code(),
	}
}
