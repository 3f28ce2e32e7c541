package handler_test

import (
	"context"
	"errors"
	"net/http"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"summercamp-backend/entity"
)

type commitBody struct {
	InsertResult writeResult `json:"insertResult"`
	DeleteResult writeResult `json:"deleteResult"`
}

var _ = Describe("Payments", func() {
	var (
		e     *env
		token string
	)

	BeforeEach(func() {
		e = newEnv()
		token = e.tokenFor("a@x.com")
	})

	Describe("POST /create-payment-intent", func() {
		Specify("happy path", func() {
			rec := e.do(http.MethodPost, "/create-payment-intent", token, map[string]float64{"price": 20})
			Expect(rec.Code).To(Equal(http.StatusOK))
			body := map[string]string{}
			decode(rec, &body)
			Expect(body["clientSecret"]).To(Equal("pi_test_secret"))

			Expect(e.provider.calls).To(Equal([]intentCall{{amount: 2000, currency: "usd"}}))
		})
		Specify("fractional prices round to cents", func() {
			e.do(http.MethodPost, "/create-payment-intent", token, map[string]float64{"price": 19.99})
			Expect(e.provider.calls[0].amount).To(Equal(int64(1999)))
		})
		Specify("sad path - no token", func() {
			expectError(e.do(http.MethodPost, "/create-payment-intent", "", map[string]float64{"price": 20}), http.StatusUnauthorized, "unauthorized access!")
			Expect(e.provider.calls).To(BeEmpty())
		})
		Specify("sad path - no price", func() {
			expectError(e.do(http.MethodPost, "/create-payment-intent", token, map[string]float64{}), http.StatusBadRequest, "price must be positive and at most 999999.99")
			Expect(e.provider.calls).To(BeEmpty())
		})
		Specify("sad path - price above the provider limit", func() {
			for _, price := range []float64{1000000, 1e300} {
				expectError(e.do(http.MethodPost, "/create-payment-intent", token, map[string]float64{"price": price}), http.StatusBadRequest, "price must be positive and at most 999999.99")
			}
			Expect(e.provider.calls).To(BeEmpty())
		})
		Specify("sad path - provider down", func() {
			e.provider.err = errors.New("stripe unavailable")
			expectError(e.do(http.MethodPost, "/create-payment-intent", token, map[string]float64{"price": 20}), http.StatusInternalServerError, "payment provider error")
		})
	})

	Describe("POST /payments", func() {
		payment := map[string]interface{}{"classId": "c1", "user": "a@x.com", "amount": 50, "transactionId": "pi_1"}

		BeforeEach(func() {
			e.store.selected = []*entity.SelectedClass{
				{ID: "b1", ClassID: "c1", User: "a@x.com"},
				{ID: "b2", ClassID: "c1", User: "b@x.com"},
			}
		})

		Specify("records the payment and removes the booking", func() {
			rec := e.do(http.MethodPost, "/payments", token, payment)
			Expect(rec.Code).To(Equal(http.StatusOK), rec.Body.String())

			body := commitBody{}
			decode(rec, &body)
			Expect(body.InsertResult.Acknowledged).To(BeTrue())
			Expect(body.InsertResult.InsertedID).NotTo(BeNil())
			Expect(*body.DeleteResult.DeletedCount).To(Equal(int64(1)))

			Expect(e.store.payments).To(HaveLen(1))
			Expect(e.store.payments[0].ClassID).To(Equal("c1"))
			Expect(e.store.payments[0].User).To(Equal("a@x.com"))
			Expect(e.store.payments[0].Amount).To(Equal(50.0))
			Expect(e.store.payments[0].Date.IsZero()).To(BeFalse())

			Expect(e.store.selected).To(HaveLen(1))
			Expect(e.store.selected[0].ID).To(Equal("b2"))
		})
		Specify("a repeat still records the payment", func() {
			e.do(http.MethodPost, "/payments", token, payment)

			rec := e.do(http.MethodPost, "/payments", token, payment)
			Expect(rec.Code).To(Equal(http.StatusOK))
			body := commitBody{}
			decode(rec, &body)
			Expect(body.InsertResult.Acknowledged).To(BeTrue())
			Expect(body.DeleteResult.DeletedCount).NotTo(BeNil())
			Expect(*body.DeleteResult.DeletedCount).To(Equal(int64(0)))

			Expect(e.store.payments).To(HaveLen(2))
		})
		Specify("payer defaults to the token's email", func() {
			rec := e.do(http.MethodPost, "/payments", token, map[string]interface{}{"classId": "c1", "amount": 50})
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(e.store.payments[0].User).To(Equal("a@x.com"))
			Expect(e.store.selected).To(HaveLen(1))
			Expect(e.store.selected[0].User).To(Equal("b@x.com"))
		})
		Specify("announces and mails the receipt", func() {
			e.do(http.MethodPost, "/payments", token, payment)
			Expect(e.publisher.payments).To(HaveLen(1))
			Expect(e.mailer.payments).To(HaveLen(1))
			Expect(e.mailer.payments[0].TransactionID).To(Equal("pi_1"))
		})
		Specify("notification failures do not change the answer", func() {
			e.publisher.err = errors.New("broker gone")
			e.mailer.err = errors.New("mailgun gone")

			rec := e.do(http.MethodPost, "/payments", token, payment)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(e.store.payments).To(HaveLen(1))
		})
		Specify("the booking is removed even if the client leaves after the insert", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			e.store.afterInsertPayment = cancel

			rec := e.request(ctx, http.MethodPost, "/payments", "Bearer "+token, payment)
			Expect(rec.Code).To(Equal(http.StatusOK), rec.Body.String())

			Expect(e.store.payments).To(HaveLen(1))
			Expect(e.store.selected).To(HaveLen(1))
			Expect(e.store.selected[0].ID).To(Equal("b2"))
			Expect(e.publisher.payments).To(HaveLen(1))
		})
		Specify("sad path - booking removal fails after the payment is stored", func() {
			e.store.failDeleteOnPay = true

			expectError(e.do(http.MethodPost, "/payments", token, payment), http.StatusInternalServerError, "database error")
			Expect(e.store.payments).To(HaveLen(1))
			Expect(e.store.selected).To(HaveLen(2))
			Expect(e.publisher.payments).To(BeEmpty())
		})
		Specify("sad path - no classId", func() {
			expectError(e.do(http.MethodPost, "/payments", token, map[string]interface{}{"amount": 50}), http.StatusBadRequest, "classId is required")
			Expect(e.store.payments).To(BeEmpty())
		})
		Specify("sad path - no token", func() {
			expectError(e.do(http.MethodPost, "/payments", "", payment), http.StatusUnauthorized, "unauthorized access!")
			Expect(e.store.payments).To(BeEmpty())
		})
	})

	Specify("enrolled classes are the payments of an email", func() {
		e.do(http.MethodPost, "/payments", token, map[string]interface{}{"classId": "c1", "amount": 50})
		e.do(http.MethodPost, "/payments", e.tokenFor("b@x.com"), map[string]interface{}{"classId": "c2", "amount": 30})

		rec := e.do(http.MethodGet, "/enrolledClasses/a@x.com", token, nil)
		Expect(rec.Code).To(Equal(http.StatusOK))
		var ps []entity.Payment
		decode(rec, &ps)
		Expect(ps).To(HaveLen(1))
		Expect(ps[0].ClassID).To(Equal("c1"))
	})
})
