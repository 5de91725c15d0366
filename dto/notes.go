package dto

import "notesmanager/model"

type NotesResponse struct {
	Notes []NoteResponse `json:"notes"`
	Count int            `json:"count"`
}

func ToNotesResponse(notes []*model.Note) NotesResponse {
	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, ToNoteResponse(n))
	}
	return NotesResponse{Notes: out, Count: len(out)}
}

type AdminNotesResponse struct {
	Notes []AdminNoteResponse `json:"notes"`
	Count int                 `json:"count"`
}

func ToAdminNotesResponse(notes []*model.NoteWithOwner) AdminNotesResponse {
	out := make([]AdminNoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, ToAdminNoteResponse(n))
	}
	return AdminNotesResponse{Notes: out, Count: len(out)}
}

type TopUserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	NoteCount int64  `json:"noteCount"`
}

type StatsBody struct {
	TotalUsers  int64             `json:"totalUsers"`
	TotalAdmins int64             `json:"totalAdmins"`
	TotalNotes  int64             `json:"totalNotes"`
	RecentUsers int64             `json:"recentUsers"`
	RecentNotes int64             `json:"recentNotes"`
	TopUsers    []TopUserResponse `json:"topUsers"`
}

type StatsResponse struct {
	Stats StatsBody `json:"stats"`
}

func ToStatsResponse(s *model.AdminStats) StatsResponse {
	top := make([]TopUserResponse, 0, len(s.TopUsers))
	for _, u := range s.TopUsers {
		top = append(top, TopUserResponse{ID: u.ID.Hex(), Name: u.Name, Email: u.Email, NoteCount: u.NoteCount})
	}
	return StatsResponse{Stats: StatsBody{
		TotalUsers:  s.TotalUsers,
		TotalAdmins: s.TotalAdmins,
		TotalNotes:  s.TotalNotes,
		RecentUsers: s.RecentUsers,
		RecentNotes: s.RecentNotes,
		TopUsers:    top,
	}}
}
