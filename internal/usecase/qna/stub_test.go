package qna_test

import (
	"context"
	"errors"
	"sort"

	"qna/internal/domain/entity"
)

/*──────────────────── in-memory store ────────────────────*/

// memStore backs every stub repository. It keeps copies so that callers
// only observe persisted state through the repository methods.
type memStore struct {
	questions map[int64]entity.Question
	answers   map[int64]entity.Answer
	histories []entity.DeleteHistory
	nextID    int64

	saveErr    error // injected into Questions.Save / Answers.Save
	historyErr error // injected into Histories.SaveAll
	findErr    error // injected into FindActiveByID

	commits   int
	rollbacks int
}

func newStore() *memStore {
	return &memStore{
		questions: map[int64]entity.Question{},
		answers:   map[int64]entity.Answer{},
		nextID:    1,
	}
}

func (m *memStore) id() int64 {
	id := m.nextID
	m.nextID++
	return id
}

// seedQuestion stores a question and its answers, assigning ids.
func (m *memStore) seedQuestion(q *entity.Question) *entity.Question {
	q.ID = m.id()
	m.questions[q.ID] = *q
	for _, a := range q.Answers {
		a.ID = m.id()
		a.QuestionID = q.ID
		m.answers[a.ID] = *a
	}
	return q
}

func (m *memStore) loadQuestion(id int64) *entity.Question {
	stored, ok := m.questions[id]
	if !ok {
		return nil
	}
	q := stored
	q.Answers = nil
	ids := make([]int64, 0)
	for aid, a := range m.answers {
		if a.QuestionID == id {
			ids = append(ids, aid)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, aid := range ids {
		a := m.answers[aid]
		q.Answers = append(q.Answers, &a)
	}
	return &q
}

/*──────────────────── transactor ────────────────────*/

type snapshot struct {
	questions map[int64]entity.Question
	answers   map[int64]entity.Answer
	histories []entity.DeleteHistory
}

func (m *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := snapshot{
		questions: make(map[int64]entity.Question, len(m.questions)),
		answers:   make(map[int64]entity.Answer, len(m.answers)),
		histories: append([]entity.DeleteHistory(nil), m.histories...),
	}
	for k, v := range m.questions {
		snap.questions[k] = v
	}
	for k, v := range m.answers {
		snap.answers[k] = v
	}

	if err := fn(ctx); err != nil {
		m.questions, m.answers, m.histories = snap.questions, snap.answers, snap.histories
		m.rollbacks++
		return err
	}
	m.commits++
	return nil
}

/*──────────────────── repositories ────────────────────*/

type questionRepo struct{ *memStore }

func (r questionRepo) FindActiveByID(_ context.Context, id int64) (*entity.Question, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	q := r.loadQuestion(id)
	if q == nil || q.Deleted {
		return nil, nil
	}
	return q, nil
}

func (r questionRepo) Create(_ context.Context, q *entity.Question) error {
	q.ID = r.id()
	r.questions[q.ID] = *q
	return nil
}

func (r questionRepo) Save(_ context.Context, q *entity.Question) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	stored := *q
	stored.Answers = nil
	r.questions[q.ID] = stored
	for _, a := range q.Answers {
		r.answers[a.ID] = *a
	}
	return nil
}

func (r questionRepo) SaveAll(ctx context.Context, qs []*entity.Question) error {
	for _, q := range qs {
		if err := r.Save(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (r questionRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, q := range r.questions {
		if !q.Deleted {
			n++
		}
	}
	return n, r.findErr
}

type answerRepo struct{ *memStore }

func (r answerRepo) FindActiveByID(_ context.Context, id int64) (*entity.Answer, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	a, ok := r.answers[id]
	if !ok || a.Deleted {
		return nil, nil
	}
	return &a, nil
}

func (r answerRepo) Create(_ context.Context, a *entity.Answer) error {
	a.ID = r.id()
	r.answers[a.ID] = *a
	return nil
}

func (r answerRepo) Save(_ context.Context, a *entity.Answer) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.answers[a.ID] = *a
	return nil
}

func (r answerRepo) SaveAll(ctx context.Context, as []*entity.Answer) error {
	for _, a := range as {
		if err := r.Save(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (r answerRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, a := range r.answers {
		if !a.Deleted {
			n++
		}
	}
	return n, nil
}

type historyRepo struct{ *memStore }

func (r historyRepo) SaveAll(_ context.Context, hs []entity.DeleteHistory) ([]entity.DeleteHistory, error) {
	if r.historyErr != nil {
		return nil, r.historyErr
	}
	out := make([]entity.DeleteHistory, len(hs))
	for i, h := range hs {
		h.ID = r.id()
		out[i] = h
	}
	r.histories = append(r.histories, out...)
	return out, nil
}

func (r historyRepo) ListByDeletedBy(_ context.Context, userID string) ([]entity.DeleteHistory, error) {
	var out []entity.DeleteHistory
	for i := len(r.histories) - 1; i >= 0; i-- {
		if r.histories[i].DeletedBy.UserID == userID {
			out = append(out, r.histories[i])
		}
	}
	return out, nil
}

func (r historyRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.histories)), nil
}

var errDB = errors.New("db down")
