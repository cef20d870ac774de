package we

type Operation[T comparable] struct {
	Name        CommandName
	Description string
	// ReadOnly marks operations that never change the stored value.
	ReadOnly bool
	Handler  func() CommandHandler[T]
}

type ServiceDescriptor[T comparable] struct {
	Instructions string
	Operations   []Operation[T]
}

type OperationInfo struct {
	Name        CommandName `json:"name"`
	Description string      `json:"description"`
	ReadOnly    bool        `json:"readOnly"`
}
