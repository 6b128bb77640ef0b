// Package service contains the arrival-card issuance workflow: a linear
// state machine that persists the validated submission, allocates a
// unique card number, renders the PDF, publishes it to object storage
// and commits the entry-form linkage.  Collaborators are injected as
// capability interfaces so tests can substitute in-memory fakes.
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/kritsada/arrival-card-service/internal/document"
	"github.com/kritsada/arrival-card-service/internal/model"
	"github.com/kritsada/arrival-card-service/internal/queue"
	"github.com/kritsada/arrival-card-service/internal/repository"
	"github.com/kritsada/arrival-card-service/internal/validator"
)

// State names one position in the issuance workflow.  Transitions are
// strictly linear; any failure moves straight to StateFailed with no
// resume or rollback path.
type State int

const (
	StateReceived State = iota
	StateValidated
	StatePersonalPersisted
	StateTripPersisted
	StateCardNumberAllocated
	StateRendered
	StatePublished
	StateLinkagePersisted
	StateCompleted
	StateFailed
)

var stateNames = [...]string{
	"Received",
	"Validated",
	"PersonalPersisted",
	"TripPersisted",
	"CardNumberAllocated",
	"Rendered",
	"Published",
	"LinkagePersisted",
	"Completed",
	"Failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// ProfileStore persists traveller profiles.
type ProfileStore interface {
	Create(ctx context.Context, p *model.PersonalProfile) error
}

// TravelStore persists travel records.
type TravelStore interface {
	Create(ctx context.Context, t *model.TravelInformation) error
}

// EntryFormStore persists and looks up entry-form linkage records.  The
// GetByCardNumber lookup must return repository.ErrNotFound when the
// number is unused; that is the allocator's success signal.
type EntryFormStore interface {
	Create(ctx context.Context, e *model.EntryForm) error
	GetByCardNumber(ctx context.Context, cardNo string) (*model.EntryForm, error)
	GetByUniqueID(ctx context.Context, uniqueID string) (*model.EntryForm, error)
}

// Renderer produces the arrival-card PDF bytes.
type Renderer interface {
	Render(in document.Input) ([]byte, error)
}

// Publisher uploads rendered cards and resolves their public URLs.
type Publisher interface {
	Publish(ctx context.Context, uniqueID string, pdf []byte) (key, url string, err error)
}

// EventPublisher announces completed issuances to the message broker.
type EventPublisher interface {
	PublishCardIssued(ctx context.Context, event queue.CardIssuedEvent) error
}

// IssuerDeps bundles the collaborators an Issuer needs.  Events may be
// nil to disable broker notifications; everything else is required.
type IssuerDeps struct {
	Profiles    ProfileStore
	Travel      TravelStore
	Entries     EntryFormStore
	Renderer    Renderer
	Publisher   Publisher
	Events      EventPublisher
	MaxAttempts int              // card-number allocation bound; defaults to 10
	Now         func() time.Time // clock; defaults to time.Now UTC
	NewID       func() string    // document identifier source; defaults to uuid
}

// Issuer runs the issuance workflow.  One Issuer serves all requests;
// each Issue call owns its entities for the duration of that request and
// shares nothing with concurrent calls except the durable tables.
type Issuer struct {
	deps IssuerDeps
}

// NewIssuer constructs an Issuer, applying defaults for the clock,
// identifier source and allocation bound.
func NewIssuer(deps IssuerDeps) *Issuer {
	if deps.Profiles == nil || deps.Travel == nil || deps.Entries == nil ||
		deps.Renderer == nil || deps.Publisher == nil {
		panic("nil collaborator passed to NewIssuer")
	}
	if deps.MaxAttempts <= 0 {
		deps.MaxAttempts = 10
	}
	if deps.Now == nil {
		deps.Now = func() time.Time { return time.Now().UTC() }
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}
	return &Issuer{deps: deps}
}

// IssueResult is the outcome of a completed workflow.
type IssueResult struct {
	Profile  *model.PersonalProfile
	Travel   *model.TravelInformation
	Entry    *model.EntryForm
	UniqueID string
	CardNo   string
	PDFURL   string
	State    State
}

// Issue walks the workflow for one validated submission.  On failure the
// returned error is a *StepError naming the state that was not reached;
// rows persisted by earlier transitions are deliberately left in place.
func (s *Issuer) Issue(ctx context.Context, sub *validator.NormalizedSubmission) (*IssueResult, error) {
	d := s.deps

	// PersonalPersisted
	profile := sub.Profile
	if err := d.Profiles.Create(ctx, &profile); err != nil {
		return nil, failed(StatePersonalPersisted, err)
	}

	// TripPersisted
	travel := sub.Travel
	if err := d.Travel.Create(ctx, &travel); err != nil {
		return nil, failed(StateTripPersisted, err)
	}

	// CardNumberAllocated
	cardNo, err := AllocateWithRetry(ctx, d.MaxAttempts, GenerateCardNumber, s.cardNumberTaken)
	if err != nil {
		return nil, failed(StateCardNumberAllocated, err)
	}

	// Rendered
	uniqueID := d.NewID()
	pdf, err := d.Renderer.Render(document.Input{
		Profile:          profile,
		Travel:           travel,
		CountriesVisited: sub.CountriesVisited,
		CardNo:           cardNo,
		UniqueID:         uniqueID,
		IssuedAt:         d.Now(),
	})
	if err != nil {
		return nil, failed(StateRendered, err)
	}

	// Published
	key, url, err := d.Publisher.Publish(ctx, uniqueID, pdf)
	if err != nil {
		return nil, failed(StatePublished, err)
	}

	// LinkagePersisted
	entry := model.EntryForm{
		ProfileID: profile.ID,
		TravelID:  travel.ID,
		UniqueID:  uniqueID,
		CardNo:    cardNo,
		PDFPath:   key,
		PDFURL:    url,
	}
	if err := d.Entries.Create(ctx, &entry); err != nil {
		return nil, failed(StateLinkagePersisted, err)
	}

	// Completed. The entry-form row is the durable success signal; a
	// broker outage must not fail a submission that already has one.
	if d.Events != nil {
		event := queue.CardIssuedEvent{
			EntryFormID: entry.ID,
			CardNo:      cardNo,
			UniqueID:    uniqueID,
			FullName:    profile.FirstName + " " + profile.FamilyName,
			PassportNo:  profile.PassportNo,
			ArrivalDate: travel.DateOfArrival.Format("2006-01-02"),
			PDFURL:      url,
			IssuedAt:    d.Now().Format(time.RFC3339),
		}
		if err := d.Events.PublishCardIssued(ctx, event); err != nil {
			log.Printf("issuance: card.issued publish failed for %s: %v", cardNo, err)
		}
	}

	return &IssueResult{
		Profile:  &profile,
		Travel:   &travel,
		Entry:    &entry,
		UniqueID: uniqueID,
		CardNo:   cardNo,
		PDFURL:   url,
		State:    StateCompleted,
	}, nil
}

// cardNumberTaken adapts the entry-form lookup into the allocator's
// predicate. ErrNotFound means the candidate is free; any other lookup
// failure aborts allocation immediately.
func (s *Issuer) cardNumberTaken(ctx context.Context, cardNo string) (bool, error) {
	_, err := s.deps.Entries.GetByCardNumber(ctx, cardNo)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	return false, err
}
