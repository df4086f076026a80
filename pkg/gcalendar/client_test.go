package gcalendar_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/dtg01100/vacation-calendar-updater/pkg/gcalendar"
)

type rewriteTransport struct {
	Transport http.RoundTripper
	Host      string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = t.Host
	return t.Transport.RoundTrip(req)
}

func newFakeClient(t *testing.T, handler http.HandlerFunc) (*gcalendar.Client, func()) {
	t.Helper()
	ts := httptest.NewServer(handler)

	tsClient := ts.Client()
	tsClient.Transport = &rewriteTransport{
		Transport: tsClient.Transport,
		Host:      strings.TrimPrefix(ts.URL, "http://"),
	}

	client, err := gcalendar.NewClientFromHTTP(context.Background(), tsClient)
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}
	return client, ts.Close
}

func TestCalendarClient(t *testing.T) {
	// Constructing fake credentials for local parsing flows
	mockCreds := `{
		"installed": {
			"client_id": "test-client-id.apps.googleusercontent.com",
			"project_id": "test-project",
			"auth_uri": "https://accounts.google.com/o/oauth2/auth",
			"token_uri": "https://oauth2.googleapis.com/token",
			"client_secret": "test-secret",
			"redirect_uris": ["http://localhost"]
		}
	}`

	t.Run("Initialize with broken JWT/OAuth config", func(t *testing.T) {
		_, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(`{"broken":true}`))
		if err == nil {
			t.Errorf("expected decoding failure")
		}
	})

	t.Run("Initialize from installed app config", func(t *testing.T) {
		// Native oauth load requires token.json
		os.WriteFile("token.json", []byte(`{"access_token": "dummy", "token_type": "Bearer", "expiry": "2030-01-01T00:00:00Z"}`), 0644)
		defer os.Remove("token.json")

		_, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(mockCreds))
		if err != nil {
			t.Fatalf("expected parsing to succeed: %v", err)
		}
	})

	t.Run("Initialize from installed app config bad token", func(t *testing.T) {
		os.WriteFile("token.json", []byte(`{"broken": true`), 0644)
		defer os.Remove("token.json")

		_, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(mockCreds))
		if err == nil {
			t.Fatalf("expected parsing to fail on bad token")
		}
	})

	t.Run("Initialize from File", func(t *testing.T) {
		tmpFile, _ := os.CreateTemp("", "creds.json")
		defer os.Remove(tmpFile.Name())
		tmpFile.WriteString(`{"broken":true}`)
		tmpFile.Close()

		_, err := gcalendar.NewClientFromCredentialsFile(context.Background(), tmpFile.Name())
		if err == nil {
			t.Errorf("expected failure loading broken file")
		}

		_, err = gcalendar.NewClientFromCredentialsFile(context.Background(), "non-existent-file-path-12345.json")
		if err == nil {
			t.Errorf("expected reading file error")
		}
	})

	t.Run("Create Event E2E", func(t *testing.T) {
		client, closeFn := newFakeClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/calendar/v3/calendars/primary/events" && r.Method == http.MethodPost {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{
					"id": "event-123",
					"htmlLink": "https://calendar.google.com/event-uri",
					"status": "confirmed"
				}`))
				return
			}
			w.WriteHeader(http.StatusNotFound)
		})
		defer closeFn()

		event, err := client.CreateEvent(context.Background(), gcalendar.CreateEventRequest{
			CalendarID:  "primary",
			Summary:     "Vacation",
			Description: "Desc",
			StartTime:   time.Now(),
			EndTime:     time.Now().Add(time.Hour),
		})
		if err != nil {
			t.Fatalf("failed to create event: %v", err)
		}
		if event.HtmlLink != "https://calendar.google.com/event-uri" {
			t.Errorf("unexpected link: %s", event.HtmlLink)
		}
		if event.ID != "event-123" {
			t.Errorf("unexpected id: %s", event.ID)
		}
	})

	t.Run("Delete Event E2E", func(t *testing.T) {
		client, closeFn := newFakeClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			switch r.URL.Path {
			case "/calendar/v3/calendars/primary/events/event-123":
				w.WriteHeader(http.StatusNoContent)
			case "/calendar/v3/calendars/primary/events/gone-456":
				w.WriteHeader(http.StatusGone)
				w.Write([]byte(`{"error": {"code": 410, "message": "Resource has been deleted"}}`))
			default:
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"error": {"code": 404, "message": "Not Found"}}`))
			}
		})
		defer closeFn()

		if err := client.DeleteEvent(context.Background(), "primary", "event-123"); err != nil {
			t.Fatalf("unexpected delete error: %v", err)
		}

		err := client.DeleteEvent(context.Background(), "primary", "gone-456")
		if err == nil || !gcalendar.IsNotFound(err) {
			t.Errorf("expected IsNotFound for 410, got %v", err)
		}

		err = client.DeleteEvent(context.Background(), "primary", "missing-789")
		if err == nil || !gcalendar.IsNotFound(err) {
			t.Errorf("expected IsNotFound for 404, got %v", err)
		}
	})

	t.Run("List Events E2E", func(t *testing.T) {
		client, closeFn := newFakeClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/calendar/v3/calendars/test-fail/events" && r.Method == http.MethodGet {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			if r.URL.Path == "/calendar/v3/calendars/primary/events" && r.Method == http.MethodGet {
				if r.URL.Query().Get("singleEvents") != "true" {
					t.Errorf("expected singleEvents=true, got %q", r.URL.Query().Get("singleEvents"))
				}
				w.WriteHeader(http.StatusOK)
				if r.URL.Query().Get("pageToken") == "" {
					w.Write([]byte(`{
						"nextPageToken": "page-2",
						"items": [
							{
								"id": "event-123",
								"summary": "Existing Event",
								"start": { "date": "2024-05-01" },
								"end": { "date": "2024-05-02" }
							},
							{
								"id": "event-bad",
								"summary": "No usable start"
							}
						]
					}`))
					return
				}
				w.Write([]byte(`{
					"items": [
						{
							"id": "event-456",
							"summary": "Timed Event",
							"start": { "dateTime": "2024-05-03T09:00:00Z" },
							"end": { "dateTime": "2024-05-03T17:00:00Z" }
						}
					]
				}`))
				return
			}
			w.WriteHeader(http.StatusNotFound)
		})
		defer closeFn()

		events, err := client.ListEvents(context.Background(), gcalendar.ListEventsRequest{
			CalendarID: "primary",
			TimeMin:    time.Now(),
			TimeMax:    time.Now().Add(time.Hour * 24),
		})
		if err != nil {
			t.Fatalf("failed to list events: %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("expected 2 events across pages, got %d", len(events))
		}
		if events[0].Summary != "Existing Event" {
			t.Errorf("unexpected event: %s", events[0].Summary)
		}
		if !events[0].AllDay {
			t.Errorf("expected all-day event for date-only start")
		}
		if events[1].ID != "event-456" {
			t.Errorf("expected second page event, got %s", events[1].ID)
		}

		_, err = client.ListEvents(context.Background(), gcalendar.ListEventsRequest{
			CalendarID: "test-fail",
			TimeMin:    time.Now(),
			TimeMax:    time.Now().Add(time.Hour * 24),
		})
		if err == nil {
			t.Fatalf("expected api error on test-fail")
		}
	})

	t.Run("List Calendars E2E", func(t *testing.T) {
		client, closeFn := newFakeClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/calendar/v3/users/me/calendarList" && r.Method == http.MethodGet {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{
					"items": [
						{"id": "primary", "summary": "Work", "accessRole": "owner", "primary": true},
						{"id": "holidays", "summary": "Holidays", "accessRole": "reader"},
						{"id": "team", "summary": "Team", "accessRole": "writer"}
					]
				}`))
				return
			}
			w.WriteHeader(http.StatusNotFound)
		})
		defer closeFn()

		calendars, err := client.ListCalendars(context.Background())
		if err != nil {
			t.Fatalf("failed to list calendars: %v", err)
		}
		if len(calendars) != 2 {
			t.Fatalf("expected read-only calendars filtered out, got %d entries", len(calendars))
		}
		if calendars[0].ID != "primary" || calendars[1].ID != "team" {
			t.Errorf("unexpected calendar set: %+v", calendars)
		}
	})

	t.Run("Create Event Error E2E", func(t *testing.T) {
		client, closeFn := newFakeClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/calendar/v3/calendars/primary/events" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
		})
		defer closeFn()

		_, err := client.CreateEvent(context.Background(), gcalendar.CreateEventRequest{
			CalendarID: "primary",
		})
		if err == nil {
			t.Fatalf("expected create event error")
		}
	})
}
