package enum

// PaymentMethod is how a sale was settled. Only cash is taken at the counter.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
)

func (m PaymentMethod) String() string {
	return string(m)
}
