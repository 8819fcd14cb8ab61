package view

import (
	"github.com/darkkaiser/miniapp-server/internal/miniapp/i18n"
)

func text(en, ru string) i18n.Text {
	return i18n.Localized(i18n.Entry{Lang: "en", Value: en}, i18n.Entry{Lang: "ru", Value: ru})
}

// 화면 문구
var (
	copyUnauthenticated = text(
		"Open the mini app from Telegram to see your subscription.",
		"Откройте мини-приложение из Telegram, чтобы увидеть данные подписки.",
	)
	copyGenericError = text(
		"Failed to load data. Please reopen the app.",
		"Не удалось загрузить данные. Попробуйте открыть приложение заново.",
	)

	copyStatusActive   = text("Subscription is active", "Подписка активна")
	copyStatusInactive = text("Subscription is inactive", "Подписка неактивна")
	copyStatusMissing  = text("No subscription", "Подписка не найдена")

	copyBalance   = text("Balance", "Баланс")
	copyExpiresAt = text("Valid until", "Действует до")
	copyTraffic   = text("Traffic", "Трафик")
	copyDevices   = text("Devices", "Устройства")

	copySubscriptionLink = text("Subscription link", "Ссылка на подписку")
	copyOpenInApp        = text("Open in %s", "Открыть в %s")
	copyLink             = text("Link", "Ссылка")

	copyStepInstall         = text("Install the app", "Установите приложение")
	copyStepAddSubscription = text("Add the subscription", "Добавьте подписку")
	copyStepConnect         = text("Connect and use", "Подключитесь и пользуйтесь")

	copyPay        = text("Pay", "Оплатить")
	copySubmitting = text("Creating payment…", "Создание платежа…")
	copyPayAgain   = text("Pay again", "Оплатить ещё раз")
	copyRetry      = text("Retry", "Повторить")

	copyPaymentFailed  = text("Failed to create payment", "Не удалось создать платёж")
	copyNoPaymentURL   = text("The payment service did not return a payment link", "Сервис не вернул ссылку на оплату")
	copyInvalidAmount  = text("Enter a valid amount", "Введите корректную сумму")
	copyAmountTooLow   = text("Minimum amount", "Минимальная сумма")
	copyAmountTooHigh  = text("Maximum amount", "Максимальная сумма")
	copyInvalidOption  = text("Select a payment option", "Выберите вариант оплаты")
	copyMethodNotFound = text("This payment method is not available", "Этот способ оплаты недоступен")
)
