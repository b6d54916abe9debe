package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"brian-crafts/backend/internal/model"
	pkgerrors "brian-crafts/backend/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	mu      sync.Mutex
	users   map[string]*model.User
	writes  int
	nextSeq int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if user.UserID == "" {
		m.nextSeq++
		user.UserID = fmt.Sprintf("user-%03d", m.nextSeq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByPhone(_ context.Context, phone string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

// ── Mock JobGroupRepository ──

type mockJobGroupRepo struct {
	groups  map[string]*model.JobGroup
	writes  int
	nextSeq int
}

func newMockJobGroupRepo() *mockJobGroupRepo {
	return &mockJobGroupRepo{groups: make(map[string]*model.JobGroup)}
}

func (m *mockJobGroupRepo) Create(_ context.Context, group *model.JobGroup) error {
	m.writes++
	if group.JobGroupID == "" {
		m.nextSeq++
		group.JobGroupID = fmt.Sprintf("grp-%03d", m.nextSeq)
	}
	m.groups[group.JobGroupID] = group
	return nil
}

func (m *mockJobGroupRepo) GetByID(_ context.Context, id string) (*model.JobGroup, error) {
	if g, ok := m.groups[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockJobGroupRepo) List(_ context.Context) ([]model.JobGroup, error) {
	var result []model.JobGroup
	for _, g := range m.groups {
		result = append(result, *g)
	}
	return result, nil
}

// ── Mock AttendanceRepository ──
//
// 与生产实现保持相同的并发契约：
// (user_id, att_date) 唯一（重复返回 gorm.ErrDuplicatedKey），
// Approve 为条件更新（已审批或不存在返回 ErrConditionFailed）。

type mockAttendanceRepo struct {
	mu      sync.Mutex
	records map[string]*model.AttendanceRecord
	byDay   map[string]string // "userID|date" → attendanceID
	writes  int
	nextSeq int
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{
		records: make(map[string]*model.AttendanceRecord),
		byDay:   make(map[string]string),
	}
}

func dayKey(userID string, date time.Time) string {
	return userID + "|" + date.Format("2006-01-02")
}

func (m *mockAttendanceRepo) Create(_ context.Context, record *model.AttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := dayKey(record.UserID, record.AttDate)
	if _, exists := m.byDay[key]; exists {
		return gorm.ErrDuplicatedKey
	}

	m.writes++
	if record.AttendanceID == "" {
		m.nextSeq++
		record.AttendanceID = fmt.Sprintf("att-%03d", m.nextSeq)
	}
	m.records[record.AttendanceID] = record
	m.byDay[key] = record.AttendanceID
	return nil
}

func (m *mockAttendanceRepo) GetByID(_ context.Context, id string) (*model.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.records[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) Approve(_ context.Context, id, approverID string, approvedAt time.Time, remarks *string, incidentFlag bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.records[id]
	if !ok || r.ApprovedBy != nil {
		return pkgerrors.ErrConditionFailed
	}

	m.writes++
	r.ApprovedBy = &approverID
	r.ApprovedAt = &approvedAt
	r.Remarks = remarks
	r.IncidentFlag = incidentFlag
	return nil
}

func (m *mockAttendanceRepo) ListByDate(_ context.Context, date time.Time) ([]model.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	day := date.Format("2006-01-02")
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if r.AttDate.Format("2006-01-02") == day {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListByUser(_ context.Context, userID string, start, end *time.Time) ([]model.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if r.UserID != userID || !inRange(r.AttDate, start, end) {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockAttendanceRepo) List(_ context.Context, start, end *time.Time) ([]model.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if !inRange(r.AttDate, start, end) {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func inRange(d time.Time, start, end *time.Time) bool {
	day := d.Format("2006-01-02")
	if start != nil && day < start.Format("2006-01-02") {
		return false
	}
	if end != nil && day > end.Format("2006-01-02") {
		return false
	}
	return true
}

// ── Mock SafetyDocumentRepository ──

type mockSafetyDocRepo struct {
	docs    []*model.SafetyDocument
	writes  int
	nextSeq int
}

func newMockSafetyDocRepo() *mockSafetyDocRepo {
	return &mockSafetyDocRepo{}
}

func (m *mockSafetyDocRepo) Create(_ context.Context, doc *model.SafetyDocument) error {
	m.writes++
	if doc.SafetyDocumentID == "" {
		m.nextSeq++
		doc.SafetyDocumentID = fmt.Sprintf("doc-%03d", m.nextSeq)
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	m.docs = append(m.docs, doc)
	return nil
}

func (m *mockSafetyDocRepo) GetLatestByDate(_ context.Context, date time.Time) (*model.SafetyDocument, error) {
	day := date.Format("2006-01-02")
	var latest *model.SafetyDocument
	for _, d := range m.docs {
		if d.DocDate.Format("2006-01-02") != day {
			continue
		}
		if latest == nil || d.CreatedAt.After(latest.CreatedAt) {
			latest = d
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

// newTestRecord 构造一条指定日期的已签到记录
func newTestRecord(userID string, date time.Time) *model.AttendanceRecord {
	return &model.AttendanceRecord{
		UserID:   userID,
		AttDate:  date,
		Signed:   true,
		SignedAt: date.Add(8 * time.Hour),
	}
}

// ── Mock OTPStore ──

type mockOTPStore struct {
	mu          sync.Mutex
	codes       map[string]string
	blacklisted map[string]bool
}

func newMockOTPStore() *mockOTPStore {
	return &mockOTPStore{
		codes:       make(map[string]string),
		blacklisted: make(map[string]bool),
	}
}

func (m *mockOTPStore) SaveOTP(_ context.Context, identifier, code string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[identifier] = code
	return nil
}

func (m *mockOTPStore) ConsumeOTP(_ context.Context, identifier, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.codes[identifier]
	if !ok {
		return false, nil
	}
	delete(m.codes, identifier)
	return stored == code, nil
}

func (m *mockOTPStore) BlacklistToken(_ context.Context, jti string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blacklisted[jti] = true
	return nil
}
