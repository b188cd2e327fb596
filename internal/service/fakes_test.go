package service

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"carebridge/internal/auth"
	"carebridge/internal/db"
	"carebridge/internal/entities"
	"carebridge/internal/repository"
)

var fixedNow = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type fakeFacilities struct {
	byID       map[int]db.Facility
	lastFilter entities.FacilitySearchFilter
	total      int64
}

func newFakeFacilities(fs ...db.Facility) *fakeFacilities {
	f := &fakeFacilities{byID: map[int]db.Facility{}}
	for _, fac := range fs {
		f.byID[fac.ID] = fac
	}
	f.total = int64(len(fs))
	return f
}

func (f *fakeFacilities) GetFacilityByID(id int) (*db.Facility, error) {
	fac, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("facility %d: %w", id, repository.ErrNotFound)
	}
	return &fac, nil
}

func (f *fakeFacilities) SearchFacilities(filter entities.FacilitySearchFilter) ([]db.Facility, int64, error) {
	f.lastFilter = filter
	out := []db.Facility{}
	for _, fac := range f.byID {
		out = append(out, fac)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, f.total, nil
}

type fakeAvailability struct {
	reports map[int]*db.FacilityAvailabilityReport
	notes   map[int][]db.SupporterAvailabilityNote

	createdReports []db.FacilityAvailabilityReport
	createdNotes   []db.SupporterAvailabilityNote
	lastLimit      int
}

func newFakeAvailability() *fakeAvailability {
	return &fakeAvailability{
		reports: map[int]*db.FacilityAvailabilityReport{},
		notes:   map[int][]db.SupporterAvailabilityNote{},
	}
}

func (f *fakeAvailability) CreateReport(r *db.FacilityAvailabilityReport) error {
	r.ID = len(f.createdReports) + 1
	f.createdReports = append(f.createdReports, *r)
	return nil
}

func (f *fakeAvailability) GetLatestReport(facilityID int, now time.Time) (*db.FacilityAvailabilityReport, error) {
	return f.reports[facilityID], nil
}

func (f *fakeAvailability) GetLatestReports(ids []int, now time.Time) (map[int]*db.FacilityAvailabilityReport, error) {
	out := map[int]*db.FacilityAvailabilityReport{}
	for _, id := range ids {
		if r, ok := f.reports[id]; ok {
			out[id] = r
		}
	}
	return out, nil
}

func (f *fakeAvailability) CreateNote(n *db.SupporterAvailabilityNote) error {
	n.ID = len(f.createdNotes) + 1
	f.createdNotes = append(f.createdNotes, *n)
	return nil
}

func (f *fakeAvailability) ListActiveNotes(facilityID int, now time.Time, limit int) ([]db.SupporterAvailabilityNote, error) {
	f.lastLimit = limit
	notes := f.notes[facilityID]
	if len(notes) > limit {
		notes = notes[:limit]
	}
	return notes, nil
}

func (f *fakeAvailability) ListActiveNotesForFacilities(ids []int, now time.Time, limit int) (map[int][]db.SupporterAvailabilityNote, error) {
	f.lastLimit = limit
	out := map[int][]db.SupporterAvailabilityNote{}
	for _, id := range ids {
		notes := f.notes[id]
		if len(notes) > limit {
			notes = notes[:limit]
		}
		if len(notes) > 0 {
			out[id] = notes
		}
	}
	return out, nil
}

type fakeUsers struct {
	byEmail map[string]*db.User
	nextID  int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]*db.User{}, nextID: 1}
}

func (f *fakeUsers) GetByEmail(email string) (*db.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUsers) CreateUser(user *db.User, password string) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return repository.ErrEmailTaken
	}
	user.ID = f.nextID
	f.nextID++
	user.PasswordHash = "hash:" + password
	f.byEmail[user.Email] = user
	return nil
}

type fakeInquiries struct {
	byID       map[int]*db.Inquiry
	lastFilter repository.InquiryFilter
}

func newFakeInquiries() *fakeInquiries {
	return &fakeInquiries{byID: map[int]*db.Inquiry{}}
}

func (f *fakeInquiries) CreateInquiry(i *db.Inquiry) error {
	i.ID = len(f.byID) + 1
	stored := *i
	f.byID[i.ID] = &stored
	return nil
}

func (f *fakeInquiries) GetInquiryByID(id int) (*db.Inquiry, error) {
	i, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("inquiry %d: %w", id, repository.ErrNotFound)
	}
	cp := *i
	return &cp, nil
}

func (f *fakeInquiries) ListInquiries(filter repository.InquiryFilter) ([]db.Inquiry, error) {
	f.lastFilter = filter
	out := []db.Inquiry{}
	for _, i := range f.byID {
		if filter.FacilityID != 0 && i.FacilityID != filter.FacilityID {
			continue
		}
		if filter.SenderID != 0 && i.SenderID != filter.SenderID {
			continue
		}
		out = append(out, *i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

func (f *fakeInquiries) UpdateInquiryStatus(id int, status string, updatedAt time.Time) error {
	i, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("inquiry %d: %w", id, repository.ErrNotFound)
	}
	i.Status = status
	i.UpdatedAt = updatedAt
	return nil
}

type notification struct {
	facility db.Facility
	inquiry  db.Inquiry
	sender   auth.Claims
}

type fakeNotifier struct {
	sent chan notification
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(chan notification, 4)}
}

func (f *fakeNotifier) NotifyNewInquiry(facility db.Facility, inquiry db.Inquiry, sender auth.Claims) {
	f.sent <- notification{facility: facility, inquiry: inquiry, sender: sender}
}

type sentEmail struct {
	to, name, subject, plain, html string
}

type fakeMessageSender struct {
	mu     sync.Mutex
	emails []sentEmail
	sms    []string
	err    error
}

func (f *fakeMessageSender) SendEmail(to, name, subject, plain, html string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emails = append(f.emails, sentEmail{to, name, subject, plain, html})
	return f.err
}

func (f *fakeMessageSender) SendSMS(to, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sms = append(f.sms, to+": "+body)
	return f.err
}

type fakeJobRepo struct {
	expired    []int
	lastCutoff time.Time
	deleted    []int
}

func (f *fakeJobRepo) GetNoteIDsExpiredBefore(cutoff time.Time) ([]int, error) {
	f.lastCutoff = cutoff
	return f.expired, nil
}

func (f *fakeJobRepo) DeleteNotes(ids []int) (int64, error) {
	f.deleted = append(f.deleted, ids...)
	return int64(len(ids)), nil
}

func intPtr(i int) *int { return &i }
