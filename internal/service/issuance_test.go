package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kritsada/arrival-card-service/internal/document"
	"github.com/kritsada/arrival-card-service/internal/model"
	"github.com/kritsada/arrival-card-service/internal/queue"
	"github.com/kritsada/arrival-card-service/internal/repository"
	"github.com/kritsada/arrival-card-service/internal/validator"
)

// ---- in-memory fakes -------------------------------------------------

type fakeProfiles struct {
	rows []model.PersonalProfile
	err  error
}

func (f *fakeProfiles) Create(ctx context.Context, p *model.PersonalProfile) error {
	if f.err != nil {
		return f.err
	}
	p.ID = uint64(len(f.rows) + 1)
	p.CreatedAt = time.Unix(0, 0).UTC()
	f.rows = append(f.rows, *p)
	return nil
}

type fakeTravel struct {
	rows []model.TravelInformation
	err  error
}

func (f *fakeTravel) Create(ctx context.Context, t *model.TravelInformation) error {
	if f.err != nil {
		return f.err
	}
	t.ID = uint64(len(f.rows) + 1)
	t.CreatedAt = time.Unix(0, 0).UTC()
	f.rows = append(f.rows, *t)
	return nil
}

type fakeEntries struct {
	rows      []model.EntryForm
	createErr error
	lookupErr error // returned by GetByCardNumber instead of searching
	allTaken  bool  // every candidate reported as in use
}

func (f *fakeEntries) Create(ctx context.Context, e *model.EntryForm) error {
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = uint64(len(f.rows) + 1)
	e.CreatedAt = time.Unix(0, 0).UTC()
	f.rows = append(f.rows, *e)
	return nil
}

func (f *fakeEntries) GetByCardNumber(ctx context.Context, cardNo string) (*model.EntryForm, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	if f.allTaken {
		return &model.EntryForm{CardNo: cardNo}, nil
	}
	for i := range f.rows {
		if f.rows[i].CardNo == cardNo {
			return &f.rows[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeEntries) GetByUniqueID(ctx context.Context, uniqueID string) (*model.EntryForm, error) {
	for i := range f.rows {
		if f.rows[i].UniqueID == uniqueID {
			return &f.rows[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeRenderer struct {
	calls int
	err   error
	last  document.Input
}

func (f *fakeRenderer) Render(in document.Input) ([]byte, error) {
	f.calls++
	f.last = in
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 fake " + in.CardNo), nil
}

// fakePublisher mimics the no-overwrite contract of the real object
// store: publishing the same identifier twice fails the second time.
type fakePublisher struct {
	objects map[string][]byte
	err     error
}

func newFakePublisher() *fakePublisher { return &fakePublisher{objects: map[string][]byte{}} }

func (f *fakePublisher) Publish(ctx context.Context, uniqueID string, pdf []byte) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	key := "cards/" + uniqueID + ".pdf"
	if _, ok := f.objects[key]; ok {
		return "", "", fmt.Errorf("%s: object already exists", key)
	}
	f.objects[key] = pdf
	return key, "http://cdn.local/arrival-cards/" + key, nil
}

type fakeEvents struct {
	events []queue.CardIssuedEvent
	err    error
}

func (f *fakeEvents) PublishCardIssued(ctx context.Context, ev queue.CardIssuedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}

// ---- helpers ---------------------------------------------------------

func testSubmission() *validator.NormalizedSubmission {
	sub, verrs := validator.Validate(validator.CreateRequest{
		PersonalInfo: validator.PersonalInfoRequest{
			FamilyName:          "Doe",
			FirstName:           "Jane",
			PassportNo:          "X1234567",
			SelectedNationality: "US",
			Occupation:          "Engineer",
			Gender:              "F",
			SelectedCountry:     "US",
			SelectedCity:        "NYC",
			PhoneNoCode:         "1",
			PhoneNo:             "5551234",
			DateOfBirth:         "1990-05-01",
		},
		TripInfo: validator.TripInfoRequest{
			DateOfArrival:          "2024-06-01",
			CountryBoarded:         "US",
			PurposeOfTravel:        "Tourism",
			ModeOfTravelArrival:    "Air",
			ModeOfTransportArrival: "Airplane",
			FlightVehicleNoArrival: "TG123",
			TypeOfAccommodation:    "Hotel",
			Province:               "Bangkok",
			DistrictArea:           "Pathumwan",
			SubDistrict:            "Lumphini",
			PostCode:               "10330",
			Address:                "123 Road",
		},
		Health: validator.HealthRequest{CountriesVisited: []string{"US"}},
	})
	if verrs != nil {
		panic(fmt.Sprintf("fixture must validate: %v", verrs))
	}
	return sub
}

type world struct {
	profiles  *fakeProfiles
	travel    *fakeTravel
	entries   *fakeEntries
	renderer  *fakeRenderer
	publisher *fakePublisher
	events    *fakeEvents
}

func newWorld() *world {
	return &world{
		profiles:  &fakeProfiles{},
		travel:    &fakeTravel{},
		entries:   &fakeEntries{},
		renderer:  &fakeRenderer{},
		publisher: newFakePublisher(),
		events:    &fakeEvents{},
	}
}

func (w *world) issuer(t *testing.T) *Issuer {
	t.Helper()
	return NewIssuer(IssuerDeps{
		Profiles:  w.profiles,
		Travel:    w.travel,
		Entries:   w.entries,
		Renderer:  w.renderer,
		Publisher: w.publisher,
		Events:    w.events,
		Now:       func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) },
	})
}

// ---- tests -----------------------------------------------------------

func TestIssueCompletesAndLinksRecords(t *testing.T) {
	w := newWorld()
	res, err := w.issuer(t).Issue(context.Background(), testSubmission())
	require.NoError(t, err)

	require.Equal(t, StateCompleted, res.State)
	require.Regexp(t, `^\d{5}$`, res.CardNo)
	require.NotEmpty(t, res.UniqueID)
	require.Contains(t, res.PDFURL, res.UniqueID)

	// One row per table, linked by the generated identities.
	require.Len(t, w.profiles.rows, 1)
	require.Len(t, w.travel.rows, 1)
	require.Len(t, w.entries.rows, 1)
	entry := w.entries.rows[0]
	require.Equal(t, w.profiles.rows[0].ID, entry.ProfileID)
	require.Equal(t, w.travel.rows[0].ID, entry.TravelID)
	require.Equal(t, res.CardNo, entry.CardNo)
	require.Equal(t, res.UniqueID, entry.UniqueID)

	// The rendered document carried the allocated number and identifier.
	require.Equal(t, res.CardNo, w.renderer.last.CardNo)
	require.Equal(t, res.UniqueID, w.renderer.last.UniqueID)

	// Completion was announced downstream.
	require.Len(t, w.events.events, 1)
	require.Equal(t, res.CardNo, w.events.events[0].CardNo)
}

func TestIssueAllocationExhaustedStopsBeforeRender(t *testing.T) {
	w := newWorld()
	w.entries.allTaken = true

	_, err := w.issuer(t).Issue(context.Background(), testSubmission())
	require.ErrorIs(t, err, ErrAllocationExhausted)

	var step *StepError
	require.ErrorAs(t, err, &step)
	require.Equal(t, StateCardNumberAllocated, step.State)

	// No render, no upload, no linkage; earlier rows stay in place.
	require.Zero(t, w.renderer.calls)
	require.Empty(t, w.publisher.objects)
	require.Empty(t, w.entries.rows)
	require.Len(t, w.profiles.rows, 1)
	require.Len(t, w.travel.rows, 1)
}

func TestIssueUniquenessLookupFailureAborts(t *testing.T) {
	w := newWorld()
	w.entries.lookupErr = errors.New("storage offline")

	_, err := w.issuer(t).Issue(context.Background(), testSubmission())
	require.ErrorContains(t, err, "storage offline")
	require.Zero(t, w.renderer.calls)
}

func TestIssuePublishFailureLeavesNoLinkage(t *testing.T) {
	w := newWorld()
	w.publisher.err = errors.New("upload rejected")

	_, err := w.issuer(t).Issue(context.Background(), testSubmission())
	var step *StepError
	require.ErrorAs(t, err, &step)
	require.Equal(t, StatePublished, step.State)
	// The message names the state that was never reached, not one that
	// completed.
	require.Contains(t, err.Error(), "failed to reach Published")
	require.Empty(t, w.entries.rows)

	// Partial writes from earlier transitions are documented behavior.
	require.Len(t, w.profiles.rows, 1)
	require.Len(t, w.travel.rows, 1)
}

func TestIssueTripPersistFailureKeepsProfileRow(t *testing.T) {
	w := newWorld()
	w.travel.err = errors.New("insert failed")

	_, err := w.issuer(t).Issue(context.Background(), testSubmission())
	var step *StepError
	require.ErrorAs(t, err, &step)
	require.Equal(t, StateTripPersisted, step.State)
	require.Len(t, w.profiles.rows, 1, "no compensating delete is performed")
	require.Empty(t, w.entries.rows)
}

func TestIssueEventFailureDoesNotFailWorkflow(t *testing.T) {
	w := newWorld()
	w.events.err = errors.New("broker down")

	res, err := w.issuer(t).Issue(context.Background(), testSubmission())
	require.NoError(t, err)
	require.Equal(t, StateCompleted, res.State)
	require.Len(t, w.entries.rows, 1)
}

func TestIssueReusedIdentifierRejectedByPublisher(t *testing.T) {
	w := newWorld()
	issuer := NewIssuer(IssuerDeps{
		Profiles:  w.profiles,
		Travel:    w.travel,
		Entries:   w.entries,
		Renderer:  w.renderer,
		Publisher: w.publisher,
		NewID:     func() string { return "fixed-id" },
	})

	_, err := issuer.Issue(context.Background(), testSubmission())
	require.NoError(t, err)

	_, err = issuer.Issue(context.Background(), testSubmission())
	var step *StepError
	require.ErrorAs(t, err, &step)
	require.Equal(t, StatePublished, step.State)
	require.ErrorContains(t, err, "already exists")
}
