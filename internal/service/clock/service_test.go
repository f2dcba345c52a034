package clock

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-clock/internal/csvimport"
	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	repo "github.com/oshokin/alarm-clock/internal/repository/alarms"
)

var (
	errTestLoad = errors.New("test load error")
	errTestSave = errors.New("test save error")
)

// memoryRepository is a minimal in-memory Repository implementation for tests.
type memoryRepository struct {
	// alarms is returned from Load.
	alarms []domain.Alarm
	// loadErr is returned from Load.
	loadErr error
	// saveErr is returned from Save.
	saveErr error
	// saved stores the last collection passed to Save.
	saved []domain.Alarm
	// saves counts Save calls.
	saves int
}

func (m *memoryRepository) Load(context.Context) ([]domain.Alarm, error) {
	return domain.CloneAll(m.alarms), m.loadErr
}

func (m *memoryRepository) Save(_ context.Context, alarms []domain.Alarm) error {
	m.saves++

	if m.saveErr != nil {
		return m.saveErr
	}

	m.saved = domain.CloneAll(alarms)

	return nil
}

func (m *memoryRepository) Close() error {
	return nil
}

func sequentialIDs() func() string {
	n := 0

	return func() string {
		n++

		return fmt.Sprintf("id-%d", n)
	}
}

func newTestService(t *testing.T, r *memoryRepository) *Service {
	t.Helper()

	s, err := New(context.Background(), r, sequentialIDs())
	require.NoError(t, err)

	return s
}

func TestNew_LoadsOrStartsEmpty(t *testing.T) {
	t.Parallel()

	stored := []domain.Alarm{{ID: "a", Time: "07:00", Category: "Work", Enabled: true}}

	s := newTestService(t, &memoryRepository{alarms: stored})
	require.Equal(t, stored, s.All())

	s = newTestService(t, &memoryRepository{loadErr: repo.ErrNotFound})
	require.Empty(t, s.All())

	s = newTestService(t, &memoryRepository{loadErr: fmt.Errorf("decode: %w", repo.ErrCorrupted)})
	require.Empty(t, s.All())

	s, err := New(context.Background(), &memoryRepository{loadErr: errTestLoad}, nil)
	require.ErrorIs(t, err, errTestLoad)
	require.Nil(t, s)
}

func TestAdd(t *testing.T) {
	t.Parallel()

	r := new(memoryRepository)
	s := newTestService(t, r)

	created, err := s.Add(context.Background(), domain.New("Wake", "7:05", "", nil, true, false))
	require.NoError(t, err)
	require.Equal(t, "id-1", created.ID)
	require.Equal(t, "07:05", created.Time)
	require.Equal(t, domain.DefaultCategory, created.Category)
	require.Equal(t, []string{}, created.Days)
	require.Len(t, r.saved, 1)
	require.Equal(t, *created, r.saved[0])
}

func TestAdd_ValidationLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	r := new(memoryRepository)
	s := newTestService(t, r)

	_, err := s.Add(context.Background(), &domain.Alarm{Time: "25:00", Days: []string{"Funday"}})
	require.ErrorIs(t, err, domain.ErrTimeFormat)
	require.ErrorIs(t, err, domain.ErrCategoryRequired)
	require.ErrorIs(t, err, domain.ErrUnknownDay)
	require.Empty(t, s.All())
	require.Zero(t, r.saves)
}

func TestAdd_SaveFailureLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	r := &memoryRepository{saveErr: errTestSave}
	s := newTestService(t, r)

	_, err := s.Add(context.Background(), domain.New("Wake", "07:00", "", nil, true, false))
	require.ErrorIs(t, err, errTestSave)
	require.Empty(t, s.All())
}

func TestUpdateToggleDelete(t *testing.T) {
	t.Parallel()

	r := new(memoryRepository)
	s := newTestService(t, r)
	ctx := context.Background()

	first, err := s.Add(ctx, domain.New("First", "07:00", "Work", nil, true, false))
	require.NoError(t, err)

	second, err := s.Add(ctx, domain.New("Second", "08:00", "Home", nil, true, false))
	require.NoError(t, err)

	edited := first.Clone()
	edited.Name = "Renamed"
	edited.Days = []string{"Monday"}

	updated, err := s.Update(ctx, edited)
	require.NoError(t, err)
	require.Equal(t, first.ID, updated.ID)
	require.Equal(t, "Renamed", s.All()[0].Name)

	_, err = s.Update(ctx, &domain.Alarm{ID: "missing", Time: "07:00", Category: "Work"})
	require.ErrorIs(t, err, ErrAlarmNotFound)

	toggled, err := s.Toggle(ctx, second.ID)
	require.NoError(t, err)
	require.False(t, toggled.Enabled)
	require.False(t, r.saved[1].Enabled)

	require.NoError(t, s.Delete(ctx, first.ID))
	require.ErrorIs(t, s.Delete(ctx, first.ID), ErrAlarmNotFound)

	_, err = s.Get(first.ID)
	require.ErrorIs(t, err, ErrAlarmNotFound)

	all := s.All()
	require.Len(t, all, 1)
	require.Equal(t, second.ID, all[0].ID)
	require.Equal(t, all, r.saved)
}

func TestListAndCategories(t *testing.T) {
	t.Parallel()

	s := newTestService(t, &memoryRepository{alarms: []domain.Alarm{
		{ID: "1", Name: "Morning run", Time: "06:00", Category: "Health", Enabled: true},
		{ID: "2", Name: "Standup", Time: "10:00", Category: "Work", Enabled: false},
		{ID: "3", Name: "Evening run", Time: "19:00", Category: "Health", Enabled: false},
	}})

	list := s.List(domain.Filter{Category: "Health", Search: "RUN", State: domain.StateDisabled})
	require.Len(t, list, 1)
	require.Equal(t, "3", list[0].ID)

	require.Equal(t, []string{"Health", "Work"}, s.Categories())
}

func TestImport_MergesWithoutDuplicates(t *testing.T) {
	t.Parallel()

	r := &memoryRepository{alarms: []domain.Alarm{
		{ID: "existing", Name: "Morning Alarm", Time: "07:00", Category: "Work", Enabled: true},
	}}
	s := newTestService(t, r)

	content := []byte("time,name,days,enabled,category\n" +
		"07:00,Morning Alarm,Monday,true,Work\n" +
		"09:00,Weekend Alarm,Saturday;Sunday,yes,Personal")

	result, err := s.Import(context.Background(), "alarms.csv", "", content)
	require.NoError(t, err)
	require.Equal(t, 1, result.Skipped)
	require.Len(t, result.Imported, 1)
	require.Equal(t, "Successfully imported 1 alarms", result.Message())

	all := s.All()
	require.Len(t, all, 2)
	require.Equal(t, "existing", all[0].ID)
	require.Equal(t, "Weekend Alarm", all[1].Name)
	require.Equal(t, []string{"Saturday", "Sunday"}, all[1].Days)
	require.NotEmpty(t, all[1].ID)
	require.Equal(t, all, r.saved)
}

func TestImport_NothingNew(t *testing.T) {
	t.Parallel()

	r := &memoryRepository{alarms: []domain.Alarm{
		{ID: "existing", Name: "Nap", Time: "14:00", Category: "General", Enabled: true},
	}}
	s := newTestService(t, r)

	result, err := s.Import(context.Background(), "a.csv", "", []byte("time,name\n14:00,Nap"))
	require.NoError(t, err)
	require.Empty(t, result.Imported)
	require.Equal(t, 1, result.Skipped)
	require.Zero(t, r.saves)
}

func TestImport_Errors(t *testing.T) {
	t.Parallel()

	s := newTestService(t, new(memoryRepository))

	_, err := s.Import(context.Background(), "alarms.txt", "text/plain", []byte("time,name\n07:00,A"))
	require.ErrorIs(t, err, csvimport.ErrNotCSV)

	_, err = s.Import(context.Background(), "alarms.csv", "", []byte("time,name"))
	require.ErrorIs(t, err, csvimport.ErrEmptyData)

	require.Empty(t, s.All())
}
