package types

import "fmt"

// PickerErrorKind 选图/拍照失败的类型
type PickerErrorKind int

const (
	PickerCanceled PickerErrorKind = iota + 1
	PickerUnavailable
	PickerUnknown
)

func (k PickerErrorKind) String() string {
	switch k {
	case PickerCanceled:
		return "canceled"
	case PickerUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

type PickerError struct {
	Kind PickerErrorKind
	Err  error
}

func (e *PickerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("picker %s: %v", e.Kind, e.Err)
	}
	return "picker " + e.Kind.String()
}

func (e *PickerError) Unwrap() error {
	return e.Err
}

// PickerResult 选图结果：成功带图片和可选坐标，或取消，或失败
type PickerResult struct {
	Image      []byte
	Coordinate *Coordinate
	Err        *PickerError
}

func PickerSuccess(image []byte, coord *Coordinate) PickerResult {
	return PickerResult{Image: image, Coordinate: coord}
}

func PickerCanceledResult() PickerResult {
	return PickerResult{Err: &PickerError{Kind: PickerCanceled}}
}

func PickerFailed(kind PickerErrorKind, err error) PickerResult {
	return PickerResult{Err: &PickerError{Kind: kind, Err: err}}
}

func (r PickerResult) Canceled() bool {
	return r.Err != nil && r.Err.Kind == PickerCanceled
}
