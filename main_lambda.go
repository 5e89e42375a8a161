//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

type optimizeRequest struct {
	Mode       string          `json:"mode"`
	Input      string          `json:"input"`
	Blueprints json.RawMessage `json:"blueprints"`
}

func handler(_ context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(400, "invalid base64 body")
		}
		body = string(decoded)
	}

	var req optimizeRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return errResp(400, "invalid JSON: "+err.Error())
	}

	mode := ModeQuality
	if req.Mode != "" {
		m, err := ParseMode(req.Mode)
		if err != nil {
			return errResp(400, err.Error())
		}
		mode = m
	}

	var (
		blueprints []Blueprint
		err        error
	)
	switch {
	case len(req.Blueprints) > 0:
		blueprints, err = LoadBlueprintsJSON(string(req.Blueprints))
	case req.Input != "":
		blueprints, err = ParseBlueprints(req.Input)
	default:
		return errResp(400, "missing input or blueprints field")
	}
	if err != nil {
		return errResp(400, "invalid blueprints: "+err.Error())
	}
	if len(blueprints) == 0 {
		return errResp(400, "no blueprints")
	}

	report := RunScenarios(blueprints, mode, DefaultConfig())
	respJSON, _ := json.Marshal(report)
	return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: string(respJSON)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	lambda.Start(handler)
}
