package handler

import (
	"context"
	"net/http"
	"notesapi/cmd/internal/contract"
	"notesapi/cmd/internal/utils/apierror"
	"strconv"

	"github.com/labstack/echo/v4"
)

type NoteService interface {
	GetAllNotes(ctx context.Context) ([]*contract.NoteResponse, apierror.ErrorResponse)
	GetNoteByID(ctx context.Context, noteID int64) (*contract.NoteResponse, apierror.ErrorResponse)
	CreateNote(ctx context.Context, req *contract.NoteRequest) (*contract.NoteResponse, apierror.ErrorResponse)
	UpdateNote(ctx context.Context, noteID int64, req *contract.UpdateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse)
}

type DefaultNoteRoute struct {
	NoteService NoteService
}

func NewNoteDefault(noteService NoteService) *DefaultNoteRoute {
	return &DefaultNoteRoute{NoteService: noteService}
}

func (n *DefaultNoteRoute) GetNotes(c echo.Context) error {
	notes, err := n.NoteService.GetAllNotes(c.Request().Context())
	if err != nil {
		return c.JSON(err.Code(), err)
	}
	return c.JSON(http.StatusOK, notes)
}

func (n *DefaultNoteRoute) GetNote(c echo.Context) error {
	id, perr := parseNoteID(c)
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	note, apierr := n.NoteService.GetNoteByID(c.Request().Context(), id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, note)
}

func (n *DefaultNoteRoute) CreateNote(c echo.Context) error {
	var req contract.NoteRequest
	if err := c.Bind(&req); err != nil {
		malformed := apierror.NewMalformedBodyError()
		return c.JSON(malformed.Code(), malformed)
	}

	note, apierr := n.NoteService.CreateNote(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, note)
}

func (n *DefaultNoteRoute) UpdateNote(c echo.Context) error {
	id, perr := parseNoteID(c)
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	var req contract.UpdateNoteRequest
	if err := c.Bind(&req); err != nil {
		malformed := apierror.NewMalformedBodyError()
		return c.JSON(malformed.Code(), malformed)
	}

	note, apierr := n.NoteService.UpdateNote(c.Request().Context(), id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, note)
}

func parseNoteID(c echo.Context) (int64, apierror.ErrorResponse) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apierror.NewInvalidParamTypeError("id", "int")
	}
	return id, nil
}
