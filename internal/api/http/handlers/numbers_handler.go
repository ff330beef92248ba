package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/credential-gateway/internal/api/dto"
	"github.com/spec-kit/credential-gateway/internal/numbers"
	apperrors "github.com/spec-kit/credential-gateway/pkg/util/errorutil"
)

// NumbersHandler serves the guarded list operations. The caller identity
// set by the access guard is not consulted.
type NumbersHandler struct{}

// NewNumbersHandler constructs handler.
func NewNumbersHandler() *NumbersHandler {
	return &NumbersHandler{}
}

// BubbleSort handles POST /bubble-sort.
func (h *NumbersHandler) BubbleSort(c *fiber.Ctx) error {
	in, err := parseNumbers(c)
	if err != nil {
		return err
	}
	return c.JSON(dto.SortResponse{Numbers: numbers.BubbleSort(in)})
}

// FilterEven handles POST /filter-even.
func (h *NumbersHandler) FilterEven(c *fiber.Ctx) error {
	in, err := parseNumbers(c)
	if err != nil {
		return err
	}
	return c.JSON(dto.FilterEvenResponse{EvenNumbers: numbers.FilterEven(in)})
}

// Sum handles POST /sum-elements.
func (h *NumbersHandler) Sum(c *fiber.Ctx) error {
	in, err := parseNumbers(c)
	if err != nil {
		return err
	}
	sum, err := numbers.Sum(in)
	if err != nil {
		return apperrors.NewInvalidInput(err.Error())
	}
	return c.JSON(dto.SumResponse{Sum: sum})
}

// Max handles POST /max-value.
func (h *NumbersHandler) Max(c *fiber.Ctx) error {
	in, err := parseNumbers(c)
	if err != nil {
		return err
	}
	largest, err := numbers.Max(in)
	if err != nil {
		return apperrors.NewInvalidInput(err.Error())
	}
	return c.JSON(dto.MaxResponse{Max: largest})
}

// BinarySearch handles POST /binary-search.
func (h *NumbersHandler) BinarySearch(c *fiber.Ctx) error {
	var req dto.BinarySearchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Numbers == nil || req.Target == nil {
		return apperrors.NewValidationError("numbers and target required", nil)
	}
	index, found := numbers.BinarySearch(*req.Numbers, *req.Target)
	return c.JSON(dto.BinarySearchResponse{Found: found, Index: index})
}

func parseNumbers(c *fiber.Ctx) ([]int, error) {
	var req dto.NumbersRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Numbers == nil {
		return nil, apperrors.NewValidationError("numbers required", nil)
	}
	return *req.Numbers, nil
}
