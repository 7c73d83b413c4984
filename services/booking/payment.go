package booking

import "agendly/models"

// paymentPlan captures what each payment method means for a fresh
// appointment. Dispatch happens through this table so the state machine
// itself stays free of per-method conditionals.
type paymentPlan struct {
	initialStatus string
	redeemsCredit bool // consume one package credit during creation
	paidUpfront   bool // amountPaid is the snapshot price from the start
}

var paymentPlans = map[string]paymentPlan{
	models.PaymentPackageRedemption: {
		initialStatus: models.PaymentStatusSettled,
		redeemsCredit: true,
		paidUpfront:   true,
	},
	// Cash and insurance are collected in person; they settle when the
	// provider marks the appointment completed.
	models.PaymentCash: {
		initialStatus: models.PaymentStatusPending,
	},
	models.PaymentInsurance: {
		initialStatus: models.PaymentStatusPending,
	},
}
