package entity

import (
	"context"
	"sync"

	migrate "github.com/dentalops/dispatch-migrate"
	"github.com/dentalops/dispatch-migrate/source"
)

// MockSource is a configurable mock implementation of Source for use in
// tests. Unset functions return empty pages. The extra IDs method lets the
// same mock stand in for the runner's source.
type MockSource struct {
	UsersFunc         func(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyUser, error)
	OfficesFunc       func(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyOffice, error)
	DoctorsFunc       func(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyDoctor, error)
	PatientsFunc      func(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyPatient, error)
	OrdersFunc        func(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyOrder, error)
	CasesFunc         func(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyCase, error)
	CaseStatesFunc    func(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyCaseState, error)
	PaymentsFunc      func(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyPayment, error)
	FilesFunc         func(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyFile, error)
	MessagesFunc      func(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyMessage, error)
	CaseTemplatesFunc func(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyCaseTemplate, error)
	IDsFunc           func(ctx context.Context, e migrate.Entity) ([]migrate.LegacyID, error)
}

// Compile-time check that the mock satisfies Source.
var _ Source = (*MockSource)(nil)

func (m *MockSource) Users(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyUser, error) {
	if m.UsersFunc != nil {
		return m.UsersFunc(ctx, after, limit)
	}
	return nil, nil
}

func (m *MockSource) Offices(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyOffice, error) {
	if m.OfficesFunc != nil {
		return m.OfficesFunc(ctx, after, limit)
	}
	return nil, nil
}

func (m *MockSource) Doctors(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyDoctor, error) {
	if m.DoctorsFunc != nil {
		return m.DoctorsFunc(ctx, after, limit)
	}
	return nil, nil
}

func (m *MockSource) Patients(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyPatient, error) {
	if m.PatientsFunc != nil {
		return m.PatientsFunc(ctx, after, limit)
	}
	return nil, nil
}

func (m *MockSource) Orders(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyOrder, error) {
	if m.OrdersFunc != nil {
		return m.OrdersFunc(ctx, after, limit)
	}
	return nil, nil
}

func (m *MockSource) Cases(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyCase, error) {
	if m.CasesFunc != nil {
		return m.CasesFunc(ctx, after, limit)
	}
	return nil, nil
}

func (m *MockSource) CaseStates(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyCaseState, error) {
	if m.CaseStatesFunc != nil {
		return m.CaseStatesFunc(ctx, after, limit)
	}
	return nil, nil
}

func (m *MockSource) Payments(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyPayment, error) {
	if m.PaymentsFunc != nil {
		return m.PaymentsFunc(ctx, after, limit)
	}
	return nil, nil
}

func (m *MockSource) Files(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyFile, error) {
	if m.FilesFunc != nil {
		return m.FilesFunc(ctx, after, limit)
	}
	return nil, nil
}

func (m *MockSource) Messages(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyMessage, error) {
	if m.MessagesFunc != nil {
		return m.MessagesFunc(ctx, after, limit)
	}
	return nil, nil
}

func (m *MockSource) CaseTemplates(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyCaseTemplate, error) {
	if m.CaseTemplatesFunc != nil {
		return m.CaseTemplatesFunc(ctx, after, limit)
	}
	return nil, nil
}

// IDs satisfies the runner's SourceDB interface.
func (m *MockSource) IDs(ctx context.Context, e migrate.Entity) ([]migrate.LegacyID, error) {
	if m.IDsFunc != nil {
		return m.IDsFunc(ctx, e)
	}
	return nil, nil
}

// MockLookup is a configurable mock implementation of Lookup. Unset
// functions return empty sets and maps. Calls are recorded by table name.
type MockLookup struct {
	mu sync.Mutex

	LegacyIDSetFunc   func(ctx context.Context, table, column string) (map[migrate.LegacyID]struct{}, error)
	LegacyUUIDMapFunc func(ctx context.Context, table, column string) (map[migrate.LegacyID]string, error)

	LegacyIDSetCalls   []string
	LegacyUUIDMapCalls []string
}

// Compile-time check that the mock satisfies Lookup.
var _ Lookup = (*MockLookup)(nil)

func (m *MockLookup) LegacyIDSet(ctx context.Context, table, column string) (map[migrate.LegacyID]struct{}, error) {
	m.mu.Lock()
	m.LegacyIDSetCalls = append(m.LegacyIDSetCalls, table)
	m.mu.Unlock()

	if m.LegacyIDSetFunc != nil {
		return m.LegacyIDSetFunc(ctx, table, column)
	}
	return map[migrate.LegacyID]struct{}{}, nil
}

func (m *MockLookup) LegacyUUIDMap(ctx context.Context, table, column string) (map[migrate.LegacyID]string, error) {
	m.mu.Lock()
	m.LegacyUUIDMapCalls = append(m.LegacyUUIDMapCalls, table)
	m.mu.Unlock()

	if m.LegacyUUIDMapFunc != nil {
		return m.LegacyUUIDMapFunc(ctx, table, column)
	}
	return map[migrate.LegacyID]string{}, nil
}
