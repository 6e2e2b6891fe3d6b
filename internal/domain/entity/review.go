package entity

import (
	"fmt"
	"strconv"
)

// DefaultMaxRating은 설정이 없을 때 허용하는 최대 평점입니다
const DefaultMaxRating = 10.0

var reviewMessages = map[string]string{
	"MovieInfoID": "review.movieInfoId must be present",
	"Comment":     "review.comment must be present",
	"Rating":      "review.rating must be a positive value",
}

// Review는 영화 정보 id를 참조하는 리뷰 엔티티입니다.
// MovieInfoID의 존재 여부는 검사하지 않습니다
type Review struct {
	ID          string
	MovieInfoID string  `validate:"notblank"`
	Comment     string  `validate:"notblank"`
	Rating      float64 `validate:"gt=0"`
}

// Validate는 필드 제약과 최대 평점을 검사합니다. maxRating이 0 이하면 상한을 두지 않습니다
func (r *Review) Validate(maxRating float64) error {
	violations, err := collectViolations(r, reviewMessages)
	if err != nil {
		return err
	}

	if maxRating > 0 && r.Rating > 0 {
		tag := "lte=" + strconv.FormatFloat(maxRating, 'f', -1, 64)
		if err := validatorInstance().Var(r.Rating, tag); err != nil {
			violations = append(violations, fmt.Sprintf("review.rating must not exceed %g", maxRating))
		}
	}

	if len(violations) > 0 {
		return NewValidationError(violations)
	}
	return nil
}

// AssignID는 새 식별자를 부여합니다
func (r *Review) AssignID() {
	r.ID = NewID()
}

// ApplyUpdate는 comment와 rating만 덮어씁니다. id와 movieInfoId는 바뀌지 않습니다
func (r *Review) ApplyUpdate(patch *Review) {
	r.Comment = patch.Comment
	r.Rating = patch.Rating
}

// Clone은 복사본을 반환합니다
func (r *Review) Clone() *Review {
	clone := *r
	return &clone
}
