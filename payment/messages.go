package payment

// Language selects the response message bundle. It never changes the shape
// of what is sent to a provider.
type Language string

const (
	English Language = "en"
	Chinese Language = "zh"
)

// ParseLanguage maps anything other than "zh" to English.
func ParseLanguage(s string) Language {
	if Language(s) == Chinese {
		return Chinese
	}
	return English
}

// Key names a user-facing message. Keys double as the machine-readable
// reason code in error responses.
type Key string

const (
	MsgPaymentAccepted Key = "paymentAccepted"
	MsgRedirecting     Key = "redirecting"

	MsgMethodNotAllowed      Key = "methodNotAllowed"
	MsgInvalidRequest        Key = "invalidRequest"
	MsgEmailRequired         Key = "emailRequired"
	MsgPaymentMethodRequired Key = "paymentMethodRequired"
	MsgAmountRequired        Key = "amountRequired"
	MsgPaymentTypeRequired   Key = "paymentTypeRequired"
	MsgShippingRequired      Key = "shippingRequired"
	MsgInvalidPaymentMethod  Key = "invalidPaymentMethod"
	MsgInvalidPaymentType    Key = "invalidPaymentType"
	MsgPaymentSourceRequired Key = "paymentSourceRequired"
	MsgProcessingFailed      Key = "processingFailed"
	MsgServerConfig          Key = "serverConfig"
	MsgNotConfigured         Key = "notConfigured"
	MsgOrderIDRequired       Key = "orderIdRequired"
	MsgOrderNotFound         Key = "orderNotFound"
	MsgOrderStatusFailed     Key = "orderStatusFailed"
	MsgCaptureFailed         Key = "captureFailed"
	MsgNoCaptureData         Key = "noCaptureData"
	MsgCreateOrderFailed     Key = "createOrderFailed"
	MsgCreateCheckoutFailed  Key = "createCheckoutFailed"
	MsgProviderAuthFailed    Key = "providerAuthFailed"
	MsgCouponFieldsRequired  Key = "couponFieldsRequired"
	MsgCouponFailed          Key = "couponFailed"

	MsgSubscribed          Key = "subscribed"
	MsgSubscribedTest      Key = "subscribedTestEmail"
	MsgAlreadySubscribed   Key = "alreadySubscribed"
	MsgSubscriptionFailed  Key = "subscriptionFailed"
	MsgSubscribeEmailEmpty Key = "subscribeEmailRequired"
)

var bundles = map[Language]map[Key]string{
	English: {
		MsgPaymentAccepted: "Great! Your payment is being processed.",
		MsgRedirecting:     "Taking you to PayPal...",

		MsgMethodNotAllowed:      "Sorry, that method isn't allowed",
		MsgInvalidRequest:        "We couldn't read your request. Please try again.",
		MsgEmailRequired:         "Please enter your email address",
		MsgPaymentMethodRequired: "Please choose a payment method",
		MsgAmountRequired:        "Amount is missing",
		MsgPaymentTypeRequired:   "Please choose what you would like to buy",
		MsgShippingRequired:      "Please enter your shipping information",
		MsgInvalidPaymentMethod:  "Please select a valid payment method",
		MsgInvalidPaymentType:    "Please select a valid purchase option",
		MsgPaymentSourceRequired: "Please enter your card details",
		MsgProcessingFailed:      "Something went wrong. Please try again.",
		MsgServerConfig:          "Server configuration issue",
		MsgNotConfigured:         "Payment service not configured",
		MsgOrderIDRequired:       "order_id is required",
		MsgOrderNotFound:         "Order not found",
		MsgOrderStatusFailed:     "Failed to fetch order status",
		MsgCaptureFailed:         "Failed to capture payment",
		MsgNoCaptureData:         "No capture data found",
		MsgCreateOrderFailed:     "Failed to create PayPal order",
		MsgCreateCheckoutFailed:  "Failed to create Payoneer checkout",
		MsgProviderAuthFailed:    "Failed to authenticate with the payment provider",
		MsgCouponFieldsRequired:  "Missing required fields: coupon_code and customer_email",
		MsgCouponFailed:          "Failed to validate coupon",

		MsgSubscribed:          "Thank you for your subscription!",
		MsgSubscribedTest:      "You have successfully joined the waitlist! (Test email)",
		MsgAlreadySubscribed:   "You are already subscribed to our newsletter!",
		MsgSubscriptionFailed:  "Subscription processing failed, please try again later",
		MsgSubscribeEmailEmpty: "Email address is required",
	},
	Chinese: {
		MsgPaymentAccepted: "太好了！正在处理您的支付。",
		MsgRedirecting:     "正在跳转到PayPal...",

		MsgMethodNotAllowed:      "抱歉，这个方法不被允许",
		MsgInvalidRequest:        "无法读取您的请求，请重试。",
		MsgEmailRequired:         "请输入您的邮箱地址",
		MsgPaymentMethodRequired: "请选择支付方式",
		MsgAmountRequired:        "缺少金额信息",
		MsgPaymentTypeRequired:   "请选择购买类型",
		MsgShippingRequired:      "请填写收货信息",
		MsgInvalidPaymentMethod:  "请选择有效的支付方式",
		MsgInvalidPaymentType:    "请选择有效的购买类型",
		MsgPaymentSourceRequired: "请填写银行卡信息",
		MsgProcessingFailed:      "出了点问题，请重试一下。",
		MsgServerConfig:          "服务器配置有问题",
		MsgNotConfigured:         "支付服务未配置",
		MsgOrderIDRequired:       "缺少订单号",
		MsgOrderNotFound:         "未找到订单",
		MsgOrderStatusFailed:     "查询订单状态失败",
		MsgCaptureFailed:         "确认支付失败",
		MsgNoCaptureData:         "未找到支付确认信息",
		MsgCreateOrderFailed:     "创建PayPal订单失败",
		MsgCreateCheckoutFailed:  "创建Payoneer支付失败",
		MsgProviderAuthFailed:    "支付服务认证失败",
		MsgCouponFieldsRequired:  "缺少必填字段：优惠码和邮箱",
		MsgCouponFailed:          "优惠券验证失败",

		MsgSubscribed:          "感谢您的订阅！",
		MsgSubscribedTest:      "您已成功加入候补名单！（测试邮箱）",
		MsgAlreadySubscribed:   "您已经订阅了我们的产品！",
		MsgSubscriptionFailed:  "订阅处理失败，请稍后再试",
		MsgSubscribeEmailEmpty: "邮箱地址是必需的",
	},
}

// Message returns the text for key in lang, falling back to English.
func Message(lang Language, key Key) string {
	if msg, ok := bundles[lang][key]; ok {
		return msg
	}
	return bundles[English][key]
}
