package models

import "fmt"

// FailureKind классифицирует причину, по которой станок не дал телеметрию
type FailureKind string

const (
	FailureTransport FailureKind = "transport" // таймаут, отказ соединения, не-200 ответ
	FailureParse     FailureKind = "parse"     // пустой или нечитаемый ответ
	FailureConfig    FailureKind = "config"    // нет адреса или неизвестное семейство контроллера
	FailurePanic     FailureKind = "panic"
)

// PollFailure описывает неудачный опрос одного станка
type PollFailure struct {
	Kind FailureKind
	Err  error
}

func (f *PollFailure) Error() string {
	if f == nil {
		return ""
	}
	return fmt.Sprintf("%s failure: %v", f.Kind, f.Err)
}

func (f *PollFailure) Unwrap() error {
	if f == nil {
		return nil
	}
	return f.Err
}

// NewPollFailure создает ошибку опроса заданного вида
func NewPollFailure(kind FailureKind, err error) *PollFailure {
	return &PollFailure{Kind: kind, Err: err}
}

// PollResult - результат стадии адаптер+нормализатор: либо телеметрия, либо ошибка
type PollResult struct {
	Telemetry *Telemetry
	Failure   *PollFailure
}

// Ok сообщает, получена ли телеметрия
func (r PollResult) Ok() bool {
	return r.Failure == nil && r.Telemetry != nil
}
