package database

import (
	"log"
	"math_edu_backend/internal/animation"
	"math_edu_backend/internal/config"
	"math_edu_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultLessons 空库时写入的示例课程
func DefaultLessons() []model.Lesson {
	return []model.Lesson{
		{
			Title:         "Quadratic Functions",
			Content:       "# Quadratic functions\n\nA quadratic function has the form **y = ax² + bx + c**.\n\n- The sign of *a* decides whether the parabola opens up or down.\n- The discriminant D = b² − 4ac tells how many real roots exist.\n",
			AnimationType: animation.TypeQuadratic,
			AnimationConfig: datatypes.JSONMap{
				"initialA": 1, "initialB": -5, "initialC": 6,
				"minA": -5, "maxA": 5, "minB": -10, "maxB": 10, "minC": -10, "maxC": 10,
			},
			LessonOrder: 1,
		},
		{
			Title:           "Systems of Linear Equations",
			Content:         "# Systems of two linear equations\n\nEach equation is a line; the solution is where the lines meet.\nCramer's rule gives x = Dx/D and y = Dy/D when D ≠ 0.\n",
			AnimationType:   animation.TypeLinearSystem,
			AnimationConfig: datatypes.JSONMap{"a1": 2, "b1": 1, "c1": 5, "a2": 1, "b2": -1, "c2": 1, "gridRange": 10},
			LessonOrder:     2,
		},
		{
			Title:           "Circle Properties",
			Content:         "# Angles in a circle\n\nAn inscribed angle is half of the central angle that subtends the same arc.\n",
			AnimationType:   animation.TypeCircle,
			AnimationConfig: datatypes.JSONMap{"radius": 3, "centralAngle": 60, "showCentralAngle": true, "showInscribedAngle": true},
			LessonOrder:     3,
		},
		{
			Title:           "Trigonometric Ratios",
			Content:         "# sin, cos and tan\n\nFor an angle α in a right triangle: sin α = opposite / hypotenuse, cos α = adjacent / hypotenuse.\n",
			AnimationType:   animation.TypeTrigonometry,
			AnimationConfig: datatypes.JSONMap{"angle": 45},
			LessonOrder:     4,
		},
		{
			Title:           "Factoring Polynomials",
			Content:         "# Rational roots\n\nEvery rational root p/q of a polynomial with integer coefficients has p dividing the constant term and q dividing the leading coefficient.\n",
			AnimationType:   animation.TypePolynomial,
			AnimationConfig: datatypes.JSONMap{"a": 1, "b": 2, "c": -5, "d": -6},
			LessonOrder:     5,
		},
		{
			Title:           "Sequences",
			Content:         "# Arithmetic and geometric sequences\n\naₙ = a₁ + (n − 1)d and bₙ = b₁ · qⁿ⁻¹.\n",
			AnimationType:   animation.TypeSequences,
			AnimationConfig: datatypes.JSONMap{"mode": animation.SequenceArithmetic, "a1": 2, "d": 3, "n": 10},
			LessonOrder:     6,
		},
		{
			Title:           "Derivatives",
			Content:         "# The derivative as a slope\n\nf'(x) is the slope of the tangent line at x.\n",
			AnimationType:   animation.TypeDerivative,
			AnimationConfig: datatypes.JSONMap{"function": animation.FunctionQuadratic, "x": 1},
			LessonOrder:     7,
		},
		{
			Title:           "Probability",
			Content:         "# Experimental probability\n\nThe more trials, the closer the relative frequency gets to the theoretical probability.\n",
			AnimationType:   animation.TypeProbability,
			AnimationConfig: datatypes.JSONMap{"mode": animation.ModeDice, "trials": 100},
			LessonOrder:     8,
		},
		{
			Title:           "Quadratic Inequalities",
			Content:         "# Solving ax² + bx + c > 0\n\nFind the roots, then read the sign of the parabola between and outside them.\n",
			AnimationType:   animation.TypeInequality,
			AnimationConfig: datatypes.JSONMap{"a": 1, "b": -5, "c": 6, "operator": animation.OpGreater},
			LessonOrder:     9,
		},
	}
}

// Seed 创建管理员并在课程表为空时写入示例课程，可重复执行
func Seed(db *gorm.DB, cfg *config.SeedConfig) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if cfg != nil && cfg.AdminEmail != "" && cfg.AdminPassword != "" {
			var count int64
			if err := tx.Model(&model.User{}).Where("email = ?", cfg.AdminEmail).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
				if err != nil {
					return err
				}
				admin := &model.User{Email: cfg.AdminEmail, Password: string(hashed)}
				if err := tx.Create(admin).Error; err != nil {
					return err
				}
				name := cfg.AdminName
				if name == "" {
					name = "Administrator"
				}
				profile := &model.Profile{Role: model.RoleAdmin, FullName: name}
				profile.ID = admin.ID
				if err := tx.Create(profile).Error; err != nil {
					return err
				}
				log.Printf("Seeded admin account %s", cfg.AdminEmail)
			}
		}

		var lessonCount int64
		if err := tx.Model(&model.Lesson{}).Count(&lessonCount).Error; err != nil {
			return err
		}
		if lessonCount == 0 {
			lessons := DefaultLessons()
			if err := tx.Create(&lessons).Error; err != nil {
				return err
			}
			log.Printf("Seeded %d lessons", len(lessons))
		}
		return nil
	})
}
