package safe

import (
	"fmt"

	"gocv.io/x/gocv"
)

// ValidateMatForOperation checks that mat holds decoded pixel data.
func ValidateMatForOperation(mat *gocv.Mat, operation string) error {
	if mat == nil {
		return fmt.Errorf("Mat is nil for operation: %s", operation)
	}

	if mat.Empty() {
		return fmt.Errorf("Mat is empty for operation: %s", operation)
	}

	if err := ValidateDimensions(mat.Cols(), mat.Rows(), operation); err != nil {
		return err
	}

	return ValidateMatType(mat.Type(), operation)
}

func ValidateDimensions(width, height int, operation string) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d for operation: %s", width, height, operation)
	}

	if width > 32768 || height > 32768 {
		return fmt.Errorf("dimensions %dx%d exceed maximum size for operation: %s", width, height, operation)
	}

	return nil
}

func ValidateMatType(matType gocv.MatType, operation string) error {
	switch matType {
	case gocv.MatTypeCV8UC1, gocv.MatTypeCV8UC3, gocv.MatTypeCV8UC4:
		return nil
	case gocv.MatTypeCV16UC1, gocv.MatTypeCV16UC3, gocv.MatTypeCV16UC4:
		return nil
	case gocv.MatTypeCV32FC1, gocv.MatTypeCV32FC3, gocv.MatTypeCV32FC4:
		return nil
	case gocv.MatTypeCV64FC1, gocv.MatTypeCV64FC3, gocv.MatTypeCV64FC4:
		return nil
	default:
		return fmt.Errorf("unsupported MatType %d for operation: %s", int(matType), operation)
	}
}

// ValidateSameShape reports whether mat matches ref in rows, cols and type.
func ValidateSameShape(ref, mat *gocv.Mat) error {
	if mat.Rows() != ref.Rows() || mat.Cols() != ref.Cols() {
		return fmt.Errorf("size %dx%d differs from %dx%d",
			mat.Cols(), mat.Rows(), ref.Cols(), ref.Rows())
	}

	if mat.Type() != ref.Type() {
		return fmt.Errorf("type %d differs from %d", int(mat.Type()), int(ref.Type()))
	}

	return nil
}
