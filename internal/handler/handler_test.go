package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hometasks/internal/auth"
	"hometasks/internal/cache"
	"hometasks/internal/config"
	"hometasks/internal/db/dbtest"
	"hometasks/internal/errors"
	"hometasks/internal/handler"
	"hometasks/internal/model"
	"hometasks/internal/repository"
	"hometasks/internal/router"
	"hometasks/internal/serializer"
	"hometasks/internal/service"
)

type testServer struct {
	e  *echo.Echo
	db *gorm.DB
}

func setup(t *testing.T) *testServer {
	t.Helper()
	gormDB := dbtest.New(t)
	store := repository.NewStore(gormDB)
	c := cache.New("", "", 0)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	e := echo.New()
	e.Logger.SetOutput(testWriter{t})
	router.Register(
		e,
		&config.Config{CORSAllowOrigins: []string{"*"}},
		handler.NewUserHandler(service.NewUserService(store, hasher, c)),
		handler.NewMemberHandler(service.NewMemberService(store, c)),
		handler.NewItemHandler(service.NewItemService(store, c)),
		handler.NewEventHandler(service.NewEventService(store, c)),
	)
	return &testServer{e: e, db: gormDB}
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimSpace(string(p)))
	return len(p), nil
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	return s.doWithType(t, method, path, body, echo.MIMEApplicationJSON)
}

func (s *testServer) doWithType(t *testing.T, method, path, body, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	assert.Equal(t, code, decode[errors.ErrorResponse](t, rec).Code)
}

func (s *testServer) addUser(t *testing.T, username string) serializer.UserView {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/user/add",
		fmt.Sprintf(`{"username":%q,"password":"p","email":"%s@x.com"}`, username, username))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[serializer.UserView](t, rec)
}

func (s *testServer) addMember(t *testing.T, userID uint, first string) serializer.MemberView {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/member/add",
		fmt.Sprintf(`{"first_name":%q,"last_name":"Do","is_admin":false,"user_id":%d}`, first, userID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[serializer.MemberView](t, rec)
}

func (s *testServer) addItem(t *testing.T, memberID uint, text string) serializer.ItemView {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/item/add",
		fmt.Sprintf(`{"text":%q,"list_type":"chores","member_id":%d}`, text, memberID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[serializer.ItemView](t, rec)
}

func TestAddUser(t *testing.T) {
	s := setup(t)

	rec := s.do(t, http.MethodPost, "/user/add", `{"username":"a","password":"p","email":"a@x.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	raw := decode[map[string]interface{}](t, rec)
	assert.NotZero(t, raw["id"])
	assert.Equal(t, "a", raw["username"])
	assert.Equal(t, "a@x.com", raw["email"])
	assert.Equal(t, []interface{}{}, raw["members"])
	assert.NotContains(t, raw, "password")
	assert.NotContains(t, rec.Body.String(), `"p"`)

	var stored model.User
	require.NoError(t, s.db.First(&stored).Error)
	assert.NotEqual(t, "p", stored.PasswordHash)
}

func TestAddUser_Rejections(t *testing.T) {
	s := setup(t)
	s.addUser(t, "taken")

	tests := []struct {
		name        string
		body        string
		contentType string
		wantStatus  int
		wantCode    string
	}{
		{"duplicate username", `{"username":"taken","password":"p","email":"new@x.com"}`, echo.MIMEApplicationJSON, http.StatusBadRequest, "USERNAME_TAKEN"},
		{"duplicate email", `{"username":"fresh","password":"p","email":"taken@x.com"}`, echo.MIMEApplicationJSON, http.StatusBadRequest, "EMAIL_TAKEN"},
		{"not json", `username=x`, echo.MIMEApplicationForm, http.StatusBadRequest, "INVALID_CONTENT_TYPE"},
		{"missing content type", `{}`, "", http.StatusBadRequest, "INVALID_CONTENT_TYPE"},
		{"malformed json", `{"username":`, echo.MIMEApplicationJSON, http.StatusBadRequest, "INVALID_REQUEST"},
		{"missing email", `{"username":"x","password":"p"}`, echo.MIMEApplicationJSON, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"password over 72 characters", fmt.Sprintf(`{"username":"long","password":%q,"email":"long@x.com"}`, strings.Repeat("a", 73)), echo.MIMEApplicationJSON, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"password over 72 bytes", fmt.Sprintf(`{"username":"wide","password":%q,"email":"wide@x.com"}`, strings.Repeat("é", 40)), echo.MIMEApplicationJSON, http.StatusBadRequest, "PASSWORD_TOO_LONG"},
		{"username too long", `{"username":"abcdefghijklmnopqrstuvwxyz","password":"p","email":"long@x.com"}`, echo.MIMEApplicationJSON, http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.doWithType(t, http.MethodPost, "/user/add", tt.body, tt.contentType)
			assertError(t, rec, tt.wantStatus, tt.wantCode)
		})
	}

	var n int64
	require.NoError(t, s.db.Model(&model.User{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestNotJSONMessage(t *testing.T) {
	s := setup(t)
	rec := s.doWithType(t, http.MethodPost, "/member/add", "first_name=Jo", "text/plain")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Error: Data must be json", decode[errors.ErrorResponse](t, rec).Error)
}

func TestVerifyUser(t *testing.T) {
	s := setup(t)
	created := s.addUser(t, "jo")

	rec := s.do(t, http.MethodPost, "/user/verify", `{"username":"jo","password":"p"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	verified := decode[serializer.UserView](t, rec)
	assert.Equal(t, created.ID, verified.ID)

	for _, body := range []string{
		`{"username":"jo","password":"wrong"}`,
		`{"username":"nobody","password":"p"}`,
	} {
		rec := s.do(t, http.MethodPost, "/user/verify", body)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		resp := decode[errors.ErrorResponse](t, rec)
		assert.Equal(t, "User NOT verified", resp.Error)
		assert.Equal(t, "USER_NOT_VERIFIED", resp.Code)
	}
}

func TestGetUsers(t *testing.T) {
	s := setup(t)

	rec := s.do(t, http.MethodGet, "/user/get", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	first := s.addUser(t, "first")
	s.addUser(t, "second")
	member := s.addMember(t, first.ID, "Kid")
	s.addItem(t, member.MemberID, "dishes")
	rec = s.do(t, http.MethodPost, "/event/add", fmt.Sprintf(`{"title":"Trip","start":"s","end":"e","user_id":%d}`, first.ID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/user/get", "")
	require.Equal(t, http.StatusOK, rec.Code)
	users := decode[[]serializer.UserView](t, rec)
	require.Len(t, users, 2)
	require.Len(t, users[0].Members, 1)
	require.Len(t, users[0].Members[0].Lists, 1)
	assert.Equal(t, "dishes", users[0].Members[0].Lists[0].Text)
	require.Len(t, users[0].Events, 1)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/user/get/%d", first.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, users[0], decode[serializer.UserView](t, rec))

	assertError(t, s.do(t, http.MethodGet, "/user/get/999", ""), http.StatusNotFound, "USER_NOT_FOUND")
	assertError(t, s.do(t, http.MethodGet, "/user/get/abc", ""), http.StatusBadRequest, "INVALID_ID")
}

func TestAddMemberThenList(t *testing.T) {
	s := setup(t)
	user := s.addUser(t, "parent")
	require.Equal(t, uint(1), user.ID)

	rec := s.do(t, http.MethodPost, "/member/add", `{"first_name":"Jo","last_name":"Do","is_admin":false,"user_id":1}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	member := decode[serializer.MemberView](t, rec)
	assert.NotZero(t, member.MemberID)
	assert.Equal(t, "Jo", member.FirstName)
	assert.Equal(t, "Do", member.LastName)
	assert.False(t, member.IsAdmin)
	assert.Empty(t, member.Lists)

	rec = s.do(t, http.MethodGet, "/members/get/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode[[]serializer.MemberView](t, rec), member)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/member/get/%d", member.MemberID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, member, decode[serializer.MemberView](t, rec))
}

func TestAddMember_Rejections(t *testing.T) {
	s := setup(t)
	s.addUser(t, "parent")

	assertError(t, s.do(t, http.MethodPost, "/member/add", `{"first_name":"Jo","last_name":"Do","is_admin":false,"user_id":42}`),
		http.StatusUnprocessableEntity, "INVALID_REFERENCE")
	assertError(t, s.do(t, http.MethodPost, "/member/add", `{"first_name":"Jo","last_name":"Do","user_id":1}`),
		http.StatusBadRequest, "VALIDATION_ERROR")
	assertError(t, s.do(t, http.MethodGet, "/member/get/5", ""), http.StatusNotFound, "MEMBER_NOT_FOUND")
}

func TestUpdateMember(t *testing.T) {
	s := setup(t)
	user := s.addUser(t, "parent")
	member := s.addMember(t, user.ID, "Jo")
	path := fmt.Sprintf("/member/update/%d", member.MemberID)

	rec := s.do(t, http.MethodPatch, path, `{"is_admin":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Member has been updated", decode[string](t, rec))

	rec = s.do(t, http.MethodPut, path, `{"first_name":"Joanna","last_name":null}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/member/get/%d", member.MemberID), "")
	got := decode[serializer.MemberView](t, rec)
	assert.Equal(t, "Joanna", got.FirstName)
	assert.Equal(t, "Do", got.LastName)
	assert.True(t, got.IsAdmin)

	assertError(t, s.do(t, http.MethodPut, "/member/update/999", `{"first_name":"x"}`), http.StatusNotFound, "MEMBER_NOT_FOUND")
	assertError(t, s.doWithType(t, http.MethodPatch, path, `first_name=x`, echo.MIMEApplicationForm), http.StatusBadRequest, "INVALID_CONTENT_TYPE")
	assertError(t, s.do(t, http.MethodPatch, path, `{"is_admin":"yes"}`), http.StatusBadRequest, "INVALID_REQUEST")
}

func TestItems(t *testing.T) {
	s := setup(t)
	user := s.addUser(t, "parent")
	first := s.addMember(t, user.ID, "A")
	second := s.addMember(t, user.ID, "B")

	item := s.addItem(t, first.MemberID, "Vacuum")
	assert.False(t, item.IsCompleted)
	assert.Equal(t, "chores", item.ListType)

	rec := s.do(t, http.MethodPut, fmt.Sprintf("/item/update/%d", item.ListID), `{"is_completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "List item has been updated", decode[string](t, rec))

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/item/get/%d", first.MemberID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode[[]serializer.ItemView](t, rec)
	require.Len(t, items, 1)
	assert.Equal(t, serializer.ItemView{ListID: item.ListID, Text: "Vacuum", IsCompleted: true, ListType: "chores"}, items[0])

	rec = s.do(t, http.MethodPatch, fmt.Sprintf("/item/update/%d", item.ListID), fmt.Sprintf(`{"member_id":%d}`, second.MemberID))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = s.do(t, http.MethodGet, fmt.Sprintf("/item/get/%d", first.MemberID), "")
	assert.JSONEq(t, `[]`, rec.Body.String())

	assertError(t, s.do(t, http.MethodPatch, fmt.Sprintf("/item/update/%d", item.ListID), `{"member_id":999}`),
		http.StatusUnprocessableEntity, "INVALID_REFERENCE")
	assertError(t, s.do(t, http.MethodPost, "/item/add", `{"text":"x","list_type":"chores","member_id":999}`),
		http.StatusUnprocessableEntity, "INVALID_REFERENCE")
	assertError(t, s.do(t, http.MethodPut, "/item/update/999", `{"text":"x"}`), http.StatusNotFound, "ITEM_NOT_FOUND")

	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/item/delete/%d", item.ListID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "The list item has been deleted.", decode[string](t, rec))
	assertError(t, s.do(t, http.MethodDelete, fmt.Sprintf("/item/delete/%d", item.ListID), ""), http.StatusNotFound, "ITEM_NOT_FOUND")
}

func TestEvents(t *testing.T) {
	s := setup(t)
	user := s.addUser(t, "planner")

	rec := s.do(t, http.MethodPost, "/event/add",
		fmt.Sprintf(`{"title":"Dentist","start":"2024-03-01T09:00","end":"2024-03-01T10:00","user_id":%d}`, user.ID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	event := decode[serializer.EventView](t, rec)
	assert.NotZero(t, event.EventID)
	assert.Equal(t, "2024-03-01T09:00", event.Start)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/event/get/%d", user.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []serializer.EventView{event}, decode[[]serializer.EventView](t, rec))

	assertError(t, s.do(t, http.MethodPost, "/event/add", `{"title":"x","start":"a","end":"b","user_id":77}`),
		http.StatusUnprocessableEntity, "INVALID_REFERENCE")

	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/event/delete/%d", event.EventID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "The event has been deleted.", decode[string](t, rec))
	assertError(t, s.do(t, http.MethodDelete, fmt.Sprintf("/event/delete/%d", event.EventID), ""), http.StatusNotFound, "EVENT_NOT_FOUND")
}

func TestDeleteUserCascades(t *testing.T) {
	s := setup(t)
	user := s.addUser(t, "owner")
	require.Equal(t, uint(1), user.ID)
	other := s.addUser(t, "neighbour")
	kept := s.addMember(t, other.ID, "Stay")
	s.addItem(t, kept.MemberID, "untouched")

	var memberIDs []uint
	for i := 0; i < 2; i++ {
		m := s.addMember(t, user.ID, fmt.Sprintf("Kid%d", i))
		memberIDs = append(memberIDs, m.MemberID)
		for j := 0; j < 3; j++ {
			s.addItem(t, m.MemberID, fmt.Sprintf("task %d", j))
		}
	}

	rec := s.do(t, http.MethodDelete, "/user/delete/1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "The user has been deleted", decode[string](t, rec))

	rec = s.do(t, http.MethodGet, "/members/get/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	for _, id := range memberIDs {
		assertError(t, s.do(t, http.MethodGet, fmt.Sprintf("/member/get/%d", id), ""), http.StatusNotFound, "MEMBER_NOT_FOUND")
		rec := s.do(t, http.MethodGet, fmt.Sprintf("/item/get/%d", id), "")
		assert.JSONEq(t, `[]`, rec.Body.String())
	}

	var members, items int64
	require.NoError(t, s.db.Model(&model.Member{}).Count(&members).Error)
	require.NoError(t, s.db.Model(&model.ListItem{}).Count(&items).Error)
	assert.Equal(t, int64(1), members)
	assert.Equal(t, int64(1), items)

	assertError(t, s.do(t, http.MethodDelete, "/user/delete/1", ""), http.StatusNotFound, "USER_NOT_FOUND")
}

func TestDeleteMember(t *testing.T) {
	s := setup(t)
	user := s.addUser(t, "owner")
	member := s.addMember(t, user.ID, "Jo")
	s.addItem(t, member.MemberID, "a")

	rec := s.do(t, http.MethodDelete, fmt.Sprintf("/member/delete/%d", member.MemberID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "The family member has been deleted.", decode[string](t, rec))

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/user/get/%d", user.ID), "")
	assert.Empty(t, decode[serializer.UserView](t, rec).Members)
	assertError(t, s.do(t, http.MethodDelete, fmt.Sprintf("/member/delete/%d", member.MemberID), ""), http.StatusNotFound, "MEMBER_NOT_FOUND")
}

func TestHealthz(t *testing.T) {
	s := setup(t)
	rec := s.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}
