package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// ReleaseDateLayout은 개봉일의 직렬화 형식입니다
const ReleaseDateLayout = "2006-01-02"

var movieInfoMessages = map[string]string{
	"Name":        "movieInfo.name must be present",
	"Year":        "movieInfo.year must be a Positive Value",
	"Cast":        "movieInfo.cast must be present",
	"ReleaseDate": "movieInfo.releaseDate must be present",
}

// MovieInfo는 영화 메타데이터 엔티티입니다
type MovieInfo struct {
	ID          string
	Name        string    `validate:"notblank"`
	Year        int       `validate:"gt=0"`
	Cast        []string  `validate:"min=1,dive,notblank"`
	ReleaseDate time.Time `validate:"required"`
}

// Validate는 필드 제약을 검사하고 위반이 있으면 *ValidationError를 반환합니다
func (m *MovieInfo) Validate() error {
	violations, err := collectViolations(m, movieInfoMessages)
	if err != nil {
		return err
	}
	if len(violations) > 0 {
		return NewValidationError(violations)
	}
	return nil
}

// AssignID는 새 식별자를 부여합니다. 클라이언트가 보낸 id는 덮어씁니다
func (m *MovieInfo) AssignID() {
	m.ID = NewID()
}

// ApplyUpdate는 name, year, cast, releaseDate를 patch 값으로 교체합니다. id는 유지됩니다
func (m *MovieInfo) ApplyUpdate(patch *MovieInfo) {
	m.Name = patch.Name
	m.Year = patch.Year
	m.Cast = slices.Clone(patch.Cast)
	m.ReleaseDate = patch.ReleaseDate
}

// Clone은 깊은 복사본을 반환합니다
func (m *MovieInfo) Clone() *MovieInfo {
	clone := *m
	clone.Cast = slices.Clone(m.Cast)
	return &clone
}

// NewID는 시간 순으로 정렬되는 UUIDv7 식별자를 만듭니다
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
