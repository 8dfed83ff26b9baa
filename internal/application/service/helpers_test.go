package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pavan-8374/PillAlarm/internal/domain/entity"
	"github.com/pavan-8374/PillAlarm/internal/infrastructure/timer"
	"github.com/pavan-8374/PillAlarm/internal/pkg/logger"

	"gorm.io/gorm"
)

// nopLogger keeps test output quiet.
type nopLogger struct{}

func (nopLogger) Error(string, error) {}
func (nopLogger) Warn(string)         {}
func (nopLogger) Info(string)         {}
func (nopLogger) Debug(string)        {}

var testLog logger.Logger = nopLogger{}

// fakeTimer records registrations in memory, one per alarm id.
type fakeTimer struct {
	mu            sync.Mutex
	exact         bool
	registrations map[uint]time.Time
	payloads      map[uint]timer.Payload
	registerCalls int
	stopped       bool
}

func newFakeTimer(exact bool) *fakeTimer {
	return &fakeTimer{
		exact:         exact,
		registrations: make(map[uint]time.Time),
		payloads:      make(map[uint]timer.Payload),
	}
}

func (f *fakeTimer) Register(id uint, at time.Time, payload timer.Payload) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registerCalls++
	f.registrations[id] = at
	f.payloads[id] = payload
	return at, nil
}

func (f *fakeTimer) Deregister(id uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.registrations, id)
	delete(f.payloads, id)
}

func (f *fakeTimer) Exact() bool { return f.exact }

func (f *fakeTimer) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeTimer) registered(id uint) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.registrations[id]
	return ok
}

func (f *fakeTimer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.registrations)
}

// fakeAlarmRepo is an in-memory AlarmRepository.
type fakeAlarmRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]*entity.Alarm
}

func newFakeAlarmRepo() *fakeAlarmRepo {
	return &fakeAlarmRepo{nextID: 1, rows: make(map[uint]*entity.Alarm)}
}

func (r *fakeAlarmRepo) FindByID(ctx context.Context, id uint) (*entity.Alarm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	alarm, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("alarm with ID %d not found", id)
	}
	cp := *alarm
	return &cp, nil
}

func (r *fakeAlarmRepo) FindByMedicineID(ctx context.Context, medicineID string) ([]*entity.Alarm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Alarm{}
	for _, alarm := range r.rows {
		if alarm.MedicineID == medicineID {
			cp := *alarm
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAlarmRepo) FindAll(ctx context.Context) ([]*entity.Alarm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Alarm{}
	for _, alarm := range r.rows {
		cp := *alarm
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeAlarmRepo) Create(ctx context.Context, alarm *entity.Alarm) (uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if alarm.ID == 0 {
		alarm.ID = r.nextID
		r.nextID++
	} else if alarm.ID >= r.nextID {
		r.nextID = alarm.ID + 1
	}
	cp := *alarm
	r.rows[alarm.ID] = &cp
	return alarm.ID, nil
}

func (r *fakeAlarmRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *fakeAlarmRepo) DeleteByMedicineID(ctx context.Context, medicineID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, alarm := range r.rows {
		if alarm.MedicineID == medicineID {
			delete(r.rows, id)
		}
	}
	return nil
}

func (r *fakeAlarmRepo) UpdateMedicinePayload(ctx context.Context, medicineID, name, imageURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, alarm := range r.rows {
		if alarm.MedicineID == medicineID {
			alarm.MedicineName = name
			alarm.MedicineImageURL = imageURL
		}
	}
	return nil
}

// fakeMedicineRepo is an in-memory MedicineRepository.
type fakeMedicineRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.Medicine
}

func newFakeMedicineRepo() *fakeMedicineRepo {
	return &fakeMedicineRepo{rows: make(map[string]*entity.Medicine)}
}

func (r *fakeMedicineRepo) FindByID(ctx context.Context, id string) (*entity.Medicine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	medicine, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("medicine with ID %s not found: %w", id, gorm.ErrRecordNotFound)
	}
	cp := *medicine
	return &cp, nil
}

func (r *fakeMedicineRepo) FindByUserID(ctx context.Context, userID string) ([]*entity.Medicine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Medicine{}
	for _, medicine := range r.rows {
		if medicine.UserID == userID {
			cp := *medicine
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMedicineRepo) Create(ctx context.Context, medicine *entity.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *medicine
	r.rows[medicine.ID] = &cp
	return nil
}

func (r *fakeMedicineRepo) Update(ctx context.Context, medicine *entity.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *medicine
	r.rows[medicine.ID] = &cp
	return nil
}

func (r *fakeMedicineRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

// fakePlayback and fakeSounder stand in for the audio device.
type fakePlayback struct {
	mu      sync.Mutex
	stopped bool
}

func (p *fakePlayback) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
}

func (p *fakePlayback) isStopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}

type fakeSounder struct {
	mu        sync.Mutex
	err       error
	playbacks []*fakePlayback
}

func (s *fakeSounder) Play() (Playback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	p := &fakePlayback{}
	s.playbacks = append(s.playbacks, p)
	return p, nil
}

// fakePresenter records presented and dismissed alarm ids.
type fakePresenter struct {
	mu        sync.Mutex
	presented []timer.Payload
	dismissed []int
}

func (p *fakePresenter) Present(payload timer.Payload) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.presented = append(p.presented, payload)
}

func (p *fakePresenter) Dismiss(alarmID int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dismissed = append(p.dismissed, alarmID)
}
