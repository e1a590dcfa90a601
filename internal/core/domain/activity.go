package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/lexfile/matter_docs_app/internal/apperrors"
)

// EntityKind identifies which aggregate an activity or audit record refers to.
type EntityKind string

const (
	KindMatter   EntityKind = "MATTER"
	KindDocument EntityKind = "DOCUMENT"
	KindRevision EntityKind = "REVISION"
	KindTransfer EntityKind = "TRANSFER"
)

// Activity names form a closed vocabulary per entity kind. The catalog is
// seeded once at startup and never mutated afterwards.
const (
	ActivityCreated    = "CREATED"
	ActivityDeleted    = "DELETED"
	ActivityRestored   = "RESTORED"
	ActivitySaved      = "SAVED"
	ActivityCheckedIn  = "CHECKED IN"
	ActivityCheckedOut = "CHECKED OUT"
	ActivityArchived   = "ARCHIVED"
	ActivityUnarchived = "UNARCHIVED"
	ActivityViewed     = "VIEWED"
	ActivityMoved      = "MOVED"
	ActivityCopied     = "COPIED"
)

// ErrUnknownActivity is returned when a name is not in the vocabulary for the
// given entity kind.
var ErrUnknownActivity = fmt.Errorf("%w: unknown activity", apperrors.ErrValidation)

var activityNamePattern = regexp.MustCompile(`^[A-Za-z0-9 ]{2,50}$`)

// Activity is a single seeded catalog entry.
type Activity struct {
	ActivityID string     `json:"activityID"`
	EntityKind EntityKind `json:"entityKind"`
	Name       string     `json:"name"`
}

// ActivityCatalog is the immutable vocabulary of permitted activities.
type ActivityCatalog struct {
	byKind map[EntityKind]map[string]Activity
	byID   map[string]Activity
}

var seedActivities = map[EntityKind][]string{
	KindDocument: {ActivityCheckedIn, ActivityCheckedOut, ActivityCreated, ActivityDeleted, ActivityRestored, ActivitySaved},
	KindMatter:   {ActivityCreated, ActivityArchived, ActivityUnarchived, ActivityDeleted, ActivityRestored, ActivityViewed},
	KindRevision: {ActivityCreated, ActivitySaved, ActivityDeleted, ActivityRestored},
	KindTransfer: {ActivityMoved, ActivityCopied},
}

// NewActivityCatalog builds the catalog from the static seed. Activity IDs are
// derived deterministically from (kind, name) so records persisted by one
// process resolve in any other.
func NewActivityCatalog() *ActivityCatalog {
	c := &ActivityCatalog{
		byKind: make(map[EntityKind]map[string]Activity, len(seedActivities)),
		byID:   make(map[string]Activity),
	}
	for kind, names := range seedActivities {
		c.byKind[kind] = make(map[string]Activity, len(names))
		for _, name := range names {
			if !activityNamePattern.MatchString(name) {
				panic(fmt.Sprintf("invalid seed activity name %q for kind %s", name, kind))
			}
			a := Activity{
				ActivityID: activityID(kind, name),
				EntityKind: kind,
				Name:       name,
			}
			c.byKind[kind][name] = a
			c.byID[a.ActivityID] = a
		}
	}
	return c
}

func activityID(kind EntityKind, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("activity/"+string(kind)+"/"+name)).String()
}

// Normalize trims surrounding whitespace and uppercases an activity name.
func (c *ActivityCatalog) Normalize(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// IsAllowed reports whether the normalized name is in the vocabulary for kind.
func (c *ActivityCatalog) IsAllowed(kind EntityKind, name string) bool {
	_, ok := c.byKind[kind][c.Normalize(name)]
	return ok
}

// Resolve returns the activity ID for a (kind, name) pair.
func (c *ActivityCatalog) Resolve(kind EntityKind, name string) (string, error) {
	a, ok := c.byKind[kind][c.Normalize(name)]
	if !ok {
		return "", fmt.Errorf("%w: %q is not a %s activity", ErrUnknownActivity, name, kind)
	}
	return a.ActivityID, nil
}

// ActivityByID looks up a seeded entry by its ID.
func (c *ActivityCatalog) ActivityByID(id string) (Activity, bool) {
	a, ok := c.byID[id]
	return a, ok
}

// Activities lists the seeded entries for an entity kind in seed order.
func (c *ActivityCatalog) Activities(kind EntityKind) []Activity {
	names := seedActivities[kind]
	out := make([]Activity, 0, len(names))
	for _, name := range names {
		out = append(out, c.byKind[kind][name])
	}
	return out
}

// defaultCatalog backs the aggregate mutators. The catalog is static data, so
// a package-level instance stands in for a per-call dependency.
var defaultCatalog = NewActivityCatalog()

// DefaultActivityCatalog returns the shared seeded catalog.
func DefaultActivityCatalog() *ActivityCatalog {
	return defaultCatalog
}

// mustActivityID resolves a seeded (kind, name) pair. An unknown pair here is
// a programming error, not a business condition.
func mustActivityID(kind EntityKind, name string) string {
	id, err := defaultCatalog.Resolve(kind, name)
	if err != nil {
		panic(err)
	}
	return id
}
