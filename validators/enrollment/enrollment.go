package enrollmentValidator

import (
	"lms/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// PaymentCallback validates the gateway's checkout callback payload.
func PaymentCallback() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			PaymentID string `json:"razorpay_payment_id"`
			OrderID   string `json:"razorpay_order_id"`
			Signature string `json:"razorpay_signature"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.PaymentID) == "" {
			errors["razorpay_payment_id"] = "Payment ID is required!"
		}
		if strings.TrimSpace(reqData.OrderID) == "" {
			errors["razorpay_order_id"] = "Order ID is required!"
		}
		if strings.TrimSpace(reqData.Signature) == "" {
			errors["razorpay_signature"] = "Signature is required!"
		}

		// Respond with errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPaymentCallback", reqData)
		return c.Next()
	}
}
