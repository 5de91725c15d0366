package handler

import (
	"notesmanager/dto"
	"notesmanager/middleware"
	"notesmanager/usecase"
	"notesmanager/utils"

	"github.com/gin-gonic/gin"
)

func ListNotesHandler(c *gin.Context, notes NotesUsecase) {
	user := middleware.CurrentUser(c)

	list, err := notes.List(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, "list_notes", err)
		return
	}
	utils.Success(c, "", dto.ToNotesResponse(list))
}

func CreateNoteHandler(c *gin.Context, notes NotesUsecase) {
	var req dto.NoteRequest
	if !bindJSON(c, "create_note", &req) {
		return
	}

	user := middleware.CurrentUser(c)
	note, err := notes.Create(c.Request.Context(), user.ID, usecase.NoteInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, "create_note", err)
		return
	}

	utils.Created(c, "Note created successfully", dto.SingleNoteResponse{Note: dto.ToNoteResponse(note)})
}

func GetNoteHandler(c *gin.Context, notes NotesUsecase) {
	user := middleware.CurrentUser(c)

	note, err := notes.Get(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		respondError(c, "get_note", err)
		return
	}
	utils.Success(c, "", dto.SingleNoteResponse{Note: dto.ToNoteResponse(note)})
}

func UpdateNoteHandler(c *gin.Context, notes NotesUsecase) {
	var req dto.NoteRequest
	if !bindJSON(c, "update_note", &req) {
		return
	}

	user := middleware.CurrentUser(c)
	note, err := notes.Update(c.Request.Context(), user.ID, c.Param("id"), usecase.NoteInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, "update_note", err)
		return
	}

	utils.Success(c, "Note updated successfully", dto.SingleNoteResponse{Note: dto.ToNoteResponse(note)})
}

func DeleteNoteHandler(c *gin.Context, notes NotesUsecase) {
	user := middleware.CurrentUser(c)

	if err := notes.Delete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		respondError(c, "delete_note", err)
		return
	}

	utils.Success(c, "Note deleted successfully", nil)
}
