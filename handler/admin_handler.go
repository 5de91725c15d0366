package handler

import (
	"fmt"

	"notesmanager/dto"
	"notesmanager/middleware"
	"notesmanager/utils"

	"github.com/gin-gonic/gin"
)

func AdminListUsersHandler(c *gin.Context, admin AdminUsecase) {
	users, err := admin.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, "admin_list_users", err)
		return
	}
	utils.Success(c, "", dto.ToUsersResponse(users))
}

func AdminDeleteUserHandler(c *gin.Context, admin AdminUsecase) {
	actor := middleware.CurrentUser(c)

	deleted, err := admin.DeleteUser(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, "admin_delete_user", err)
		return
	}
	utils.Success(c, fmt.Sprintf("User %s and all their notes have been deleted successfully", deleted.Name), nil)
}

func AdminListNotesHandler(c *gin.Context, admin AdminUsecase) {
	notes, err := admin.ListNotes(c.Request.Context())
	if err != nil {
		respondError(c, "admin_list_notes", err)
		return
	}
	utils.Success(c, "", dto.ToAdminNotesResponse(notes))
}

func AdminDeleteNoteHandler(c *gin.Context, admin AdminUsecase) {
	deleted, err := admin.DeleteNote(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "admin_delete_note", err)
		return
	}

	owner := "unknown user"
	if deleted.Owner != nil {
		owner = deleted.Owner.Name
	}
	utils.Success(c, fmt.Sprintf("Note %q by %s has been deleted successfully", deleted.Title, owner), nil)
}

func AdminStatsHandler(c *gin.Context, admin AdminUsecase) {
	stats, err := admin.Stats(c.Request.Context())
	if err != nil {
		respondError(c, "admin_stats", err)
		return
	}
	utils.Success(c, "", dto.ToStatsResponse(stats))
}
