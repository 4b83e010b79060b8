package quiz

import (
	"fmt"
	"sort"
)

// RecordStore accumulates one answer record per question ordinal. Insertion
// only; its lifetime equals one session's lifetime.
type RecordStore struct {
	records map[int]AnswerRecord
}

// NewRecordStore returns an empty store.
func NewRecordStore() *RecordStore {
	return &RecordStore{records: map[int]AnswerRecord{}}
}

// Put inserts the record for an ordinal. The first insertion wins; a second
// insertion for the same ordinal fails with ErrDuplicateRecord.
func (s *RecordStore) Put(ordinal int, record AnswerRecord) error {
	if _, exists := s.records[ordinal]; exists {
		return fmt.Errorf("%w: ordinal %d", ErrDuplicateRecord, ordinal)
	}
	s.records[ordinal] = record
	return nil
}

// Get returns the record for an ordinal, if present.
func (s *RecordStore) Get(ordinal int) (AnswerRecord, bool) {
	record, ok := s.records[ordinal]
	return record, ok
}

// Len returns the number of recorded answers.
func (s *RecordStore) Len() int {
	return len(s.records)
}

// All returns the records in ordinal order for submission to the score
// service.
func (s *RecordStore) All() []AnswerRecord {
	ordinals := make([]int, 0, len(s.records))
	for ordinal := range s.records {
		ordinals = append(ordinals, ordinal)
	}
	sort.Ints(ordinals)
	records := make([]AnswerRecord, 0, len(ordinals))
	for _, ordinal := range ordinals {
		records = append(records, s.records[ordinal])
	}
	return records
}
