package scheduling

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"agendly/models"
)

// fakeScheduleRepo is an in-memory ScheduleRepository.
type fakeScheduleRepo struct {
	hours  []models.OperatingHours
	blocks []models.TimeBlock
}

func (f *fakeScheduleRepo) GetOperatingHours(providerID string) ([]models.OperatingHours, error) {
	var out []models.OperatingHours
	for _, oh := range f.hours {
		if oh.ProviderID == providerID {
			out = append(out, oh)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) ReplaceOperatingHours(providerID string, hours []models.OperatingHours) error {
	var kept []models.OperatingHours
	for _, oh := range f.hours {
		if oh.ProviderID != providerID {
			kept = append(kept, oh)
		}
	}
	f.hours = append(kept, hours...)
	return nil
}

func (f *fakeScheduleRepo) CreateTimeBlock(block *models.TimeBlock) error {
	f.blocks = append(f.blocks, *block)
	return nil
}

func (f *fakeScheduleRepo) DeleteTimeBlock(providerID, blockID string) error {
	for i, b := range f.blocks {
		if b.ProviderID == providerID && b.ID == blockID {
			f.blocks = append(f.blocks[:i], f.blocks[i+1:]...)
			return nil
		}
	}
	return errors.New("block not found")
}

func (f *fakeScheduleRepo) GetTimeBlocksInRange(providerID string, from, to time.Time) ([]models.TimeBlock, error) {
	var out []models.TimeBlock
	for _, b := range f.blocks {
		if b.ProviderID == providerID && b.Start.Before(to) && b.End.After(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

// fakeApptRepo is an in-memory AppointmentRepository; scheduling only
// reads through FindActiveInRange.
type fakeApptRepo struct {
	appts []models.Appointment
}

func (f *fakeApptRepo) Create(ctx context.Context, appt *models.Appointment) error {
	f.appts = append(f.appts, *appt)
	return nil
}

func (f *fakeApptRepo) GetByID(id string) (*models.Appointment, error) {
	for _, a := range f.appts {
		if a.ID == id {
			cp := a
			return &cp, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeApptRepo) Update(ctx context.Context, appt *models.Appointment) error {
	for i, a := range f.appts {
		if a.ID == appt.ID {
			f.appts[i] = *appt
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeApptRepo) FindActiveInRange(providerID string, from, to time.Time, excludeID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appts {
		if a.ProviderID != providerID || a.ID == excludeID || a.Canceled() {
			continue
		}
		if a.Start.Before(to) && a.End.After(from) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApptRepo) ListByProvider(providerID string, page, limit int64) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeApptRepo) ListByConsumer(consumerID string, page, limit int64) ([]models.Appointment, error) {
	return nil, nil
}

func intPtr(v int) *int { return &v }

// monday is an arbitrary fixed Monday used across the tests.
var monday = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func newTestEngine(sched *fakeScheduleRepo, appts *fakeApptRepo) *DefaultSchedulingEngine {
	if sched == nil {
		sched = &fakeScheduleRepo{}
	}
	if appts == nil {
		appts = &fakeApptRepo{}
	}
	return &DefaultSchedulingEngine{Schedule: sched, Appointments: appts}
}

func mondayHours(providerID string) models.OperatingHours {
	// 09:00 to 17:00 with a 13:00 to 14:00 break.
	return models.OperatingHours{
		ID:         "oh-mon",
		ProviderID: providerID,
		Weekday:    time.Monday,
		Start:      540,
		End:        1020,
		BreakStart: intPtr(780),
		BreakEnd:   intPtr(840),
	}
}

func slotStarts(slots []models.AvailableSlot) []int {
	starts := make([]int, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start)
	}
	return starts
}

func TestGetAvailableSlotsFixedGridWithBreak(t *testing.T) {
	sched := &fakeScheduleRepo{hours: []models.OperatingHours{mondayHours("prov-1")}}
	engine := newTestEngine(sched, nil)

	slots, err := engine.GetAvailableSlots("prov-1", monday, monday, 60)
	if err != nil {
		t.Fatalf("GetAvailableSlots returned error: %v", err)
	}

	want := []int{540, 600, 660, 720, 840, 900, 960}
	if got := slotStarts(slots); !reflect.DeepEqual(got, want) {
		t.Errorf("slot starts = %v, want %v", got, want)
	}
	for _, s := range slots {
		if s.End != s.Start+60 {
			t.Errorf("slot %d has end %d, want %d", s.Start, s.End, s.Start+60)
		}
		if s.Date != "2025-03-03" {
			t.Errorf("slot %d has date %q, want 2025-03-03", s.Start, s.Date)
		}
	}
}

func TestGetAvailableSlotsDeterministic(t *testing.T) {
	sched := &fakeScheduleRepo{hours: []models.OperatingHours{mondayHours("prov-1")}}
	engine := newTestEngine(sched, nil)

	first, err := engine.GetAvailableSlots("prov-1", monday, monday.AddDate(0, 0, 6), 30)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := engine.GetAvailableSlots("prov-1", monday, monday.AddDate(0, 0, 6), 30)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different slot sequences")
	}
}

func TestGetAvailableSlotsSkipsNonWorkingDays(t *testing.T) {
	sched := &fakeScheduleRepo{hours: []models.OperatingHours{mondayHours("prov-1")}}
	engine := newTestEngine(sched, nil)

	// Monday through Wednesday; only Monday has hours.
	slots, err := engine.GetAvailableSlots("prov-1", monday, monday.AddDate(0, 0, 2), 60)
	if err != nil {
		t.Fatalf("GetAvailableSlots returned error: %v", err)
	}
	for _, s := range slots {
		if s.Date != "2025-03-03" {
			t.Errorf("unexpected slot on non-working day %s", s.Date)
		}
	}
	if len(slots) != 7 {
		t.Errorf("got %d slots, want 7", len(slots))
	}
}

func TestGetAvailableSlotsExcludesBookedAndBlocked(t *testing.T) {
	sched := &fakeScheduleRepo{
		hours: []models.OperatingHours{mondayHours("prov-1")},
		blocks: []models.TimeBlock{{
			ID:         "blk-1",
			ProviderID: "prov-1",
			Start:      monday.Add(15 * time.Hour), // 900
			End:        monday.Add(16 * time.Hour), // 960
		}},
	}
	appts := &fakeApptRepo{appts: []models.Appointment{{
		ID:         "appt-1",
		ProviderID: "prov-1",
		Status:     models.StatusScheduled,
		Start:      monday.Add(9 * time.Hour),  // 540
		End:        monday.Add(10 * time.Hour), // 600
	}}}
	engine := newTestEngine(sched, appts)

	slots, err := engine.GetAvailableSlots("prov-1", monday, monday, 60)
	if err != nil {
		t.Fatalf("GetAvailableSlots returned error: %v", err)
	}

	// 540 is booked, 900 is blocked; the grid does not backfill gaps.
	want := []int{600, 660, 720, 840, 960}
	if got := slotStarts(slots); !reflect.DeepEqual(got, want) {
		t.Errorf("slot starts = %v, want %v", got, want)
	}
}

func TestGetAvailableSlotsCanceledAppointmentsFreeTheSlot(t *testing.T) {
	sched := &fakeScheduleRepo{hours: []models.OperatingHours{mondayHours("prov-1")}}
	appts := &fakeApptRepo{appts: []models.Appointment{{
		ID:         "appt-1",
		ProviderID: "prov-1",
		Status:     models.StatusCanceledByPatient,
		Start:      monday.Add(9 * time.Hour),
		End:        monday.Add(10 * time.Hour),
	}}}
	engine := newTestEngine(sched, appts)

	slots, err := engine.GetAvailableSlots("prov-1", monday, monday, 60)
	if err != nil {
		t.Fatalf("GetAvailableSlots returned error: %v", err)
	}
	if got := slotStarts(slots); len(got) == 0 || got[0] != 540 {
		t.Errorf("canceled appointment still occupies 540: starts = %v", got)
	}
}

func TestGetAvailableSlotsLastSlotMayEndAtClose(t *testing.T) {
	sched := &fakeScheduleRepo{hours: []models.OperatingHours{{
		ID:         "oh-mon",
		ProviderID: "prov-1",
		Weekday:    time.Monday,
		Start:      540,
		End:        660, // two hours exactly
	}}}
	engine := newTestEngine(sched, nil)

	slots, err := engine.GetAvailableSlots("prov-1", monday, monday, 60)
	if err != nil {
		t.Fatalf("GetAvailableSlots returned error: %v", err)
	}
	want := []int{540, 600}
	if got := slotStarts(slots); !reflect.DeepEqual(got, want) {
		t.Errorf("slot starts = %v, want %v", got, want)
	}
}

func TestGetAvailableSlotsRejectsBadInput(t *testing.T) {
	engine := newTestEngine(nil, nil)

	if _, err := engine.GetAvailableSlots("prov-1", monday, monday, 0); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("zero duration: got %v, want ErrInvalidDuration", err)
	}
	if _, err := engine.GetAvailableSlots("prov-1", monday, monday, -15); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("negative duration: got %v, want ErrInvalidDuration", err)
	}
	if _, err := engine.GetAvailableSlots("prov-1", monday, monday.AddDate(0, 0, -1), 60); !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("reversed range: got %v, want ErrInvalidTimeRange", err)
	}
}

func TestHasConflictHalfOpenBoundaries(t *testing.T) {
	appts := &fakeApptRepo{appts: []models.Appointment{{
		ID:         "appt-1",
		ProviderID: "prov-1",
		Status:     models.StatusScheduled,
		Start:      monday.Add(10 * time.Hour),
		End:        monday.Add(11 * time.Hour),
	}}}
	engine := newTestEngine(nil, appts)

	// Back-to-back ranges never conflict.
	conflict, err := engine.HasConflict("prov-1", monday.Add(11*time.Hour), monday.Add(12*time.Hour), "")
	if err != nil {
		t.Fatalf("HasConflict returned error: %v", err)
	}
	if conflict {
		t.Error("adjacent range reported as conflicting")
	}

	// One minute of overlap does.
	conflict, err = engine.HasConflict("prov-1", monday.Add(10*time.Hour+59*time.Minute), monday.Add(12*time.Hour), "")
	if err != nil {
		t.Fatalf("HasConflict returned error: %v", err)
	}
	if !conflict {
		t.Error("overlapping range not reported as conflicting")
	}

	// Excluding the appointment itself clears the conflict.
	conflict, err = engine.HasConflict("prov-1", monday.Add(10*time.Hour), monday.Add(11*time.Hour), "appt-1")
	if err != nil {
		t.Fatalf("HasConflict returned error: %v", err)
	}
	if conflict {
		t.Error("range conflicts with the excluded appointment")
	}
}

func TestHasConflictAgainstTimeBlocks(t *testing.T) {
	sched := &fakeScheduleRepo{blocks: []models.TimeBlock{{
		ID:         "blk-1",
		ProviderID: "prov-1",
		Start:      monday.Add(14 * time.Hour),
		End:        monday.Add(15 * time.Hour),
	}}}
	engine := newTestEngine(sched, nil)

	conflict, err := engine.HasConflict("prov-1", monday.Add(14*time.Hour+30*time.Minute), monday.Add(15*time.Hour+30*time.Minute), "")
	if err != nil {
		t.Fatalf("HasConflict returned error: %v", err)
	}
	if !conflict {
		t.Error("time block overlap not detected")
	}
}

func TestHasConflictRejectsInvertedRange(t *testing.T) {
	engine := newTestEngine(nil, nil)
	if _, err := engine.HasConflict("prov-1", monday.Add(time.Hour), monday, ""); !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("got %v, want ErrInvalidTimeRange", err)
	}
}

func TestReplaceWeeklyHoursValidation(t *testing.T) {
	engine := newTestEngine(nil, nil)

	cases := []struct {
		name    string
		entries []models.WeeklyHoursEntry
	}{
		{"duplicate weekday", []models.WeeklyHoursEntry{
			{Weekday: time.Monday, Start: 540, End: 1020},
			{Weekday: time.Monday, Start: 600, End: 700},
		}},
		{"start not before end", []models.WeeklyHoursEntry{
			{Weekday: time.Monday, Start: 1020, End: 540},
		}},
		{"one-sided break", []models.WeeklyHoursEntry{
			{Weekday: time.Monday, Start: 540, End: 1020, BreakStart: intPtr(780)},
		}},
		{"inverted break", []models.WeeklyHoursEntry{
			{Weekday: time.Monday, Start: 540, End: 1020, BreakStart: intPtr(840), BreakEnd: intPtr(780)},
		}},
		{"break outside hours", []models.WeeklyHoursEntry{
			{Weekday: time.Monday, Start: 540, End: 1020, BreakStart: intPtr(500), BreakEnd: intPtr(560)},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := engine.ReplaceWeeklyHours("prov-1", tc.entries); !errors.Is(err, ErrInvalidTimeRange) {
				t.Errorf("got %v, want ErrInvalidTimeRange", err)
			}
		})
	}
}

func TestReplaceWeeklyHoursSwapsSchedule(t *testing.T) {
	sched := &fakeScheduleRepo{hours: []models.OperatingHours{mondayHours("prov-1")}}
	engine := newTestEngine(sched, nil)

	err := engine.ReplaceWeeklyHours("prov-1", []models.WeeklyHoursEntry{
		{Weekday: time.Tuesday, Start: 480, End: 960},
	})
	if err != nil {
		t.Fatalf("ReplaceWeeklyHours returned error: %v", err)
	}

	hours, _ := sched.GetOperatingHours("prov-1")
	if len(hours) != 1 || hours[0].Weekday != time.Tuesday {
		t.Errorf("schedule after replace = %+v, want a single Tuesday entry", hours)
	}
}

func TestCreateTimeBlockRejectsInvertedRange(t *testing.T) {
	engine := newTestEngine(nil, nil)
	_, err := engine.CreateTimeBlock("prov-1", models.CreateTimeBlockRequest{
		Start: monday.Add(2 * time.Hour),
		End:   monday.Add(time.Hour),
	})
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("got %v, want ErrInvalidTimeRange", err)
	}
}
