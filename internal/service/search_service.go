package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"patient-record-service/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key layout for the search mirror
	searchIndexName  = "idx:patients"
	patientDocPrefix = "patient:doc:"

	// Timeout for individual search-service operations
	searchTimeout = 5 * time.Second

	// Upper bound on condition-search hits
	maxSearchResults = 100
)

// SearchIndex is the derived, eventually-consistent projection of the patient
// store. It is never authoritative: every method may fail without affecting
// the correctness of primary-store operations, and callers on the write path
// are expected to log and discard errors.
type SearchIndex interface {
	IndexPatient(ctx context.Context, patient *entity.Patient) error
	RemovePatient(ctx context.Context, patientID string) error
	SearchByCondition(ctx context.Context, condition string) ([]entity.Patient, error)
}

// redisSearchIndex mirrors patient records into RediSearch hash documents.
// The FT index is created lazily on first use so a search module loaded after
// process start still works; creation runs at most once per process.
type redisSearchIndex struct {
	client *redis.Client
	log    *logrus.Logger

	indexOnce sync.Once
	indexErr  error
}

func NewRedisSearchIndex(client *redis.Client, log *logrus.Logger) SearchIndex {
	return &redisSearchIndex{
		client: client,
		log:    log,
	}
}

func (s *redisSearchIndex) IndexPatient(ctx context.Context, patient *entity.Patient) error {
	if err := s.ensureIndex(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	doc, err := patientToDoc(patient)
	if err != nil {
		return fmt.Errorf("encode patient %s for indexing: %w", patient.PatientID, err)
	}

	if err := s.client.HSet(ctx, patientDocKey(patient.PatientID), doc).Err(); err != nil {
		return fmt.Errorf("index patient %s: %w", patient.PatientID, err)
	}

	s.log.Debugf("Indexed patient %s", patient.PatientID)
	return nil
}

// RemovePatient is idempotent: removing an already-absent document succeeds.
func (s *redisSearchIndex) RemovePatient(ctx context.Context, patientID string) error {
	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	if err := s.client.Del(ctx, patientDocKey(patientID)).Err(); err != nil {
		return fmt.Errorf("remove patient %s from index: %w", patientID, err)
	}
	return nil
}

func (s *redisSearchIndex) SearchByCondition(ctx context.Context, condition string) ([]entity.Patient, error) {
	if err := s.ensureIndex(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	query := buildConditionQuery(condition)
	if query == "" {
		return []entity.Patient{}, nil
	}

	result, err := s.client.FTSearchWithArgs(ctx, searchIndexName, query, &redis.FTSearchOptions{
		LimitOffset: 0,
		Limit:       maxSearchResults,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("condition search %q: %w", condition, err)
	}

	patients := make([]entity.Patient, 0, len(result.Docs))
	for _, doc := range result.Docs {
		patient, err := docToPatient(doc.Fields)
		if err != nil {
			s.log.Warnf("Skipping malformed search document %s: %+v", doc.ID, err)
			continue
		}
		patients = append(patients, patient)
	}
	return patients, nil
}

// ensureIndex creates the FT index once per process. A pre-existing index is
// treated as success.
func (s *redisSearchIndex) ensureIndex(ctx context.Context) error {
	s.indexOnce.Do(func() {
		createCtx, cancel := context.WithTimeout(ctx, searchTimeout)
		defer cancel()

		err := s.client.FTCreate(createCtx, searchIndexName,
			&redis.FTCreateOptions{
				OnHash: true,
				Prefix: []interface{}{patientDocPrefix},
			},
			&redis.FieldSchema{FieldName: "conditions", FieldType: redis.SearchFieldTypeText, Weight: 2},
			&redis.FieldSchema{FieldName: "name", FieldType: redis.SearchFieldTypeText},
			&redis.FieldSchema{FieldName: "address", FieldType: redis.SearchFieldTypeText},
			&redis.FieldSchema{FieldName: "allergies", FieldType: redis.SearchFieldTypeText},
		).Err()
		if err != nil && !strings.Contains(err.Error(), "Index already exists") {
			s.indexErr = fmt.Errorf("create search index: %w", err)
			return
		}
		s.log.Info("Patient search index ready")
	})
	return s.indexErr
}

func patientDocKey(patientID string) string {
	return patientDocPrefix + patientID
}

func patientToDoc(patient *entity.Patient) (map[string]interface{}, error) {
	conditions, err := json.Marshal([]string(patient.Conditions))
	if err != nil {
		return nil, err
	}
	allergies, err := json.Marshal([]string(patient.Allergies))
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"patient_id": patient.PatientID,
		"name":       patient.Name,
		"address":    patient.Address,
		"conditions": string(conditions),
		"allergies":  string(allergies),
		"created_at": patient.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at": patient.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}, nil
}

func docToPatient(fields map[string]string) (entity.Patient, error) {
	var conditions, allergies []string
	if raw := fields["conditions"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &conditions); err != nil {
			return entity.Patient{}, fmt.Errorf("decode conditions: %w", err)
		}
	}
	if raw := fields["allergies"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &allergies); err != nil {
			return entity.Patient{}, fmt.Errorf("decode allergies: %w", err)
		}
	}

	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"])
	if err != nil {
		return entity.Patient{}, fmt.Errorf("decode created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, fields["updated_at"])
	if err != nil {
		return entity.Patient{}, fmt.Errorf("decode updated_at: %w", err)
	}

	return entity.Patient{
		PatientID:  fields["patient_id"],
		Name:       fields["name"],
		Address:    fields["address"],
		Conditions: entity.StringList(conditions),
		Allergies:  entity.StringList(allergies),
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}

// buildConditionQuery turns free text into a fuzzy RediSearch query. Fuzzy
// matching needs at least three characters per term; shorter terms match
// exactly. Non-alphanumeric characters are dropped because they are query
// syntax in RediSearch.
func buildConditionQuery(condition string) string {
	var terms []string
	for _, token := range strings.Fields(condition) {
		token = sanitizeToken(token)
		if token == "" {
			continue
		}
		if len(token) >= 3 {
			terms = append(terms, "%"+token+"%")
		} else {
			terms = append(terms, token)
		}
	}
	return strings.Join(terms, " ")
}

func sanitizeToken(token string) string {
	var b strings.Builder
	for _, r := range token {
		if r == '-' || r == '\'' {
			continue
		}
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
