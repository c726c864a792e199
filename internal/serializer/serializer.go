// Package serializer projects models onto the fixed JSON shapes the API
// returns. Nested collections always encode as arrays, never null, and the
// password hash is never part of a projection.
package serializer

import "hometasks/internal/model"

// ItemView is the JSON shape of a list item.
type ItemView struct {
	ListID      uint   `json:"list_id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"is_completed"`
	ListType    string `json:"list_type"`
}

// MemberView is the JSON shape of a family member.
type MemberView struct {
	MemberID  uint       `json:"member_id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	IsAdmin   bool       `json:"is_admin"`
	Lists     []ItemView `json:"lists"`
}

// EventView is the JSON shape of a calendar event.
type EventView struct {
	EventID uint   `json:"event_id"`
	Title   string `json:"title"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// UserView is the JSON shape of a user account.
type UserView struct {
	ID       uint         `json:"id"`
	Username string       `json:"username"`
	Email    string       `json:"email"`
	Img      *string      `json:"img"`
	Members  []MemberView `json:"members"`
	Events   []EventView  `json:"events"`
}

// Item renders a list item.
func Item(i model.ListItem) ItemView {
	return ItemView{
		ListID:      i.ListID,
		Text:        i.Text,
		IsCompleted: i.IsCompleted,
		ListType:    i.ListType,
	}
}

// Items renders list items, never returning nil.
func Items(items []model.ListItem) []ItemView {
	out := make([]ItemView, 0, len(items))
	for _, i := range items {
		out = append(out, Item(i))
	}
	return out
}

// Member renders a family member with its list items.
func Member(m model.Member) MemberView {
	return MemberView{
		MemberID:  m.MemberID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		IsAdmin:   m.IsAdmin,
		Lists:     Items(m.Lists),
	}
}

// Members renders family members, never returning nil.
func Members(members []model.Member) []MemberView {
	out := make([]MemberView, 0, len(members))
	for _, m := range members {
		out = append(out, Member(m))
	}
	return out
}

// Event renders a calendar event.
func Event(e model.Event) EventView {
	return EventView{
		EventID: e.EventID,
		Title:   e.Title,
		Start:   e.Start,
		End:     e.End,
	}
}

// Events renders calendar events, never returning nil.
func Events(events []model.Event) []EventView {
	out := make([]EventView, 0, len(events))
	for _, e := range events {
		out = append(out, Event(e))
	}
	return out
}

// User renders an account with its family and events. The password hash is
// never included.
func User(u model.User) UserView {
	return UserView{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Img:      u.Img,
		Members:  Members(u.Members),
		Events:   Events(u.Events),
	}
}

// Users renders accounts, never returning nil.
func Users(users []model.User) []UserView {
	out := make([]UserView, 0, len(users))
	for _, u := range users {
		out = append(out, User(u))
	}
	return out
}
