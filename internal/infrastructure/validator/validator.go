package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/contract"
	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/entity"
	usecasecontract "github.com/Prakash9019/my-cricket-reg-app/internal/usecase/contract"
)

var (
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern      = regexp.MustCompile(`^[0-9+\-()]{10,15}$`)
	postalCodePattern = regexp.MustCompile(`^\d{6}$`)
	usernamePattern   = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

// AppValidator implements the usecase.Validator interface.
type AppValidator struct {
	validate *validator.Validate
	clock    contract.IClock
}

// NewValidator creates a validator whose age checks are evaluated against clock.
func NewValidator(clock contract.IClock) usecasecontract.IValidator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	av := &AppValidator{validate: v, clock: clock}
	registerPlayerRules(v, av.playerAgeFL)
	return av
}

// ValidateEmail checks if the email format is valid.
func (av *AppValidator) ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidateRegistration reports every missing required field first; only when
// none are missing does it report rule violations, again all at once.
func (av *AppValidator) ValidateRegistration(input *usecasecontract.RegisterPlayerInput) error {
	err := av.validate.Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var missing []string
	var violations []entity.FieldViolation
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
			continue
		}
		violations = append(violations, entity.FieldViolation{Field: fe.Field(), Message: violationMessage(fe)})
	}
	if len(missing) > 0 {
		return &entity.MissingFieldError{Fields: missing}
	}
	return &entity.SchemaValidationError{Violations: violations}
}

// RegisterCustomValidators registers the player rules with the Gin binding validator.
func RegisterCustomValidators(clock contract.IClock) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		av := &AppValidator{validate: v, clock: clock}
		registerPlayerRules(v, av.playerAgeFL)
	}
}

func registerPlayerRules(v *validator.Validate, ageRule validator.Func) {
	v.RegisterValidation("lightemail", patternFL(emailPattern))
	v.RegisterValidation("phone", patternFL(phonePattern))
	v.RegisterValidation("postalcode", patternFL(postalCodePattern))
	v.RegisterValidation("username", patternFL(usernamePattern))
	v.RegisterValidation("dob", dateOfBirthFL)
	v.RegisterValidation("playerage", ageRule)
	v.RegisterValidation("gender", enumFL(entity.Genders))
	v.RegisterValidation("playerrole", enumFL(entity.PlayerRoles))
	v.RegisterValidation("battingorder", enumFL(entity.BattingOrders))
	v.RegisterValidation("bowlingstyle", enumFL(entity.BowlingStyles))
	v.RegisterValidation("battingstyle", enumFL(entity.BattingStyles))
	v.RegisterValidation("bowlingarm", enumFL(entity.BowlingArms))
}

func patternFL(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func enumFL[T ~string](allowed []T) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return entity.IsAllowed(T(fl.Field().String()), allowed)
	}
}

func dateOfBirthFL(fl validator.FieldLevel) bool {
	_, err := entity.ParseDateOfBirth(fl.Field().String())
	return err == nil
}

// playerAgeFL enforces the registration age window at validation time.
func (av *AppValidator) playerAgeFL(fl validator.FieldLevel) bool {
	dob, err := entity.ParseDateOfBirth(fl.Field().String())
	if err != nil {
		return false
	}
	age := entity.AgeAt(dob, av.clock.Now())
	return age >= entity.MinPlayerAge && age <= entity.MaxPlayerAge
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

func violationMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "lightemail":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "phone":
		return fmt.Sprintf("%s must be 10-15 characters of digits, +, -, ( or )", field)
	case "postalcode":
		return fmt.Sprintf("%s must be exactly 6 digits", field)
	case "username":
		return fmt.Sprintf("%s may only contain letters, numbers and underscores", field)
	case "dob":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	case "playerage":
		return fmt.Sprintf("age must be between %d and %d years", entity.MinPlayerAge, entity.MaxPlayerAge)
	case "gender", "playerrole", "battingorder", "bowlingstyle", "battingstyle", "bowlingarm":
		return fmt.Sprintf("%s has an unsupported value %q", field, fe.Value())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
