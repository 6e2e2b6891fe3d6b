package entity

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// validatorInstance는 notblank 규칙이 등록된 공용 validator를 반환합니다
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate
}

// collectViolations는 struct 태그 검증 결과를 필드별 메시지로 바꿉니다.
// 같은 필드의 여러 위반(예: cast 원소 여러 개)은 메시지 하나로 합쳐집니다
func collectViolations(target interface{}, messages map[string]string) ([]string, error) {
	err := validatorInstance().Struct(target)
	if err == nil {
		return nil, nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, fmt.Errorf("validate %T: %w", target, err)
	}

	violations := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.StructField()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		msg, ok := messages[field]
		if !ok {
			msg = fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag())
		}
		violations = append(violations, msg)
	}
	return violations, nil
}
