package notifier

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// 中文说明：
// Twilio 通知器：走 Messages REST 接口发短信/WhatsApp。
// 四项凭据（account_sid/auth_token/from/to）缺一不可，由 FromConfig 把关。

type Twilio struct {
	AccountSID string
	AuthToken  string
	From       string
	To         string
	Client     *http.Client
}

func NewTwilio(accountSID, authToken, from, to string) *Twilio {
	return &Twilio{
		AccountSID: accountSID,
		AuthToken:  authToken,
		From:       from,
		To:         to,
		Client:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (t *Twilio) Name() string { return "twilio" }

func (t *Twilio) SendText(text string) error {
	if t.AccountSID == "" || t.AuthToken == "" || t.From == "" || t.To == "" {
		return fmt.Errorf("Twilio 配置不完整")
	}
	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", t.AccountSID)

	form := url.Values{}
	form.Set("From", t.From)
	form.Set("To", t.To)
	form.Set("Body", text)

	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(t.AccountSID, t.AuthToken)

	resp, err := t.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("twilio status=%d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}
