package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/certprep/exam-service/internal/models"
)

func newSession(id string) *models.Session {
	return &models.Session{
		SessionID:   id,
		Mode:        models.ModeExam,
		StartTime:   time.Now(),
		UserAnswers: []models.UserAnswer{},
	}
}

func TestPutAndSnapshot(t *testing.T) {
	s := NewSessionStore()

	_, ok := s.Snapshot("missing")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())

	s.Put(newSession("a"))
	s.Put(newSession("b"))

	snap, ok := s.Snapshot("a")
	require.True(t, ok)
	assert.Equal(t, "a", snap.SessionID)
	assert.Equal(t, 2, s.Len())
}

func TestUpdate(t *testing.T) {
	s := NewSessionStore()
	s.Put(newSession("a"))

	ok := s.Update("a", func(session *models.Session) {
		session.CurrentQuestionIndex = 7
	})
	require.True(t, ok)

	snap, ok := s.Snapshot("a")
	require.True(t, ok)
	assert.Equal(t, 7, snap.CurrentQuestionIndex)

	called := false
	ok = s.Update("missing", func(session *models.Session) { called = true })
	assert.False(t, ok)
	assert.False(t, called)
}

func TestView(t *testing.T) {
	s := NewSessionStore()
	s.Put(newSession("a"))

	var seen string
	ok := s.View("a", func(session *models.Session) { seen = session.SessionID })
	require.True(t, ok)
	assert.Equal(t, "a", seen)

	assert.False(t, s.View("missing", func(session *models.Session) {}))
}

func TestSnapshotDetachesAnswers(t *testing.T) {
	s := NewSessionStore()
	session := newSession("a")
	session.UserAnswers = []models.UserAnswer{{QuestionID: "q1", SelectedAnswers: []string{"A"}}}
	s.Put(session)

	snap, ok := s.Snapshot("a")
	require.True(t, ok)
	require.Len(t, snap.UserAnswers, 1)

	s.Update("a", func(live *models.Session) {
		live.UserAnswers = append(live.UserAnswers, models.UserAnswer{QuestionID: "q2"})
	})

	assert.Len(t, snap.UserAnswers, 1, "snapshot must not see later writes")

	fresh, ok := s.Snapshot("a")
	require.True(t, ok)
	assert.Len(t, fresh.UserAnswers, 2)
}

func TestConcurrentAccess(t *testing.T) {
	s := NewSessionStore()
	s.Put(newSession("a"))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			s.Update("a", func(session *models.Session) {
				session.UserAnswers = append(session.UserAnswers, models.UserAnswer{QuestionID: "q"})
			})
		}()
		go func() {
			defer wg.Done()
			s.View("a", func(session *models.Session) {
				_ = len(session.UserAnswers)
			})
		}()
		go func() {
			defer wg.Done()
			if snap, ok := s.Snapshot("a"); ok {
				_ = len(snap.UserAnswers)
			}
		}()
	}
	wg.Wait()

	snap, ok := s.Snapshot("a")
	require.True(t, ok)
	assert.Len(t, snap.UserAnswers, 50)
}
