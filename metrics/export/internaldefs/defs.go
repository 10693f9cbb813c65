package internaldefs

import (
	goToken "github.com/MrEthical07/goToken"
)

// CounterDef defines a public type used by goToken APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   goToken.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the token repositories.
var CounterDefs = []CounterDef{
	{ID: goToken.MetricIssueSuccess, Name: "gotoken_issue_success_total", Help: "Successfully issued tokens."},
	{ID: goToken.MetricIssueFailure, Name: "gotoken_issue_failure_total", Help: "Failed token issuance attempts."},
	{ID: goToken.MetricVerifySuccess, Name: "gotoken_verify_success_total", Help: "Successful token verifications."},
	{ID: goToken.MetricVerifyFailure, Name: "gotoken_verify_failure_total", Help: "Failed token verifications."},
	{ID: goToken.MetricClaimsSuccess, Name: "gotoken_claims_success_total", Help: "Successful claim extractions."},
	{ID: goToken.MetricClaimsFailure, Name: "gotoken_claims_failure_total", Help: "Failed claim extractions."},
	{ID: goToken.MetricDecryptFailure, Name: "gotoken_decrypt_failure_total", Help: "Failed envelope decryptions."},
	{ID: goToken.MetricRefreshSuccess, Name: "gotoken_refresh_success_total", Help: "Successful token refreshes."},
	{ID: goToken.MetricRefreshFailure, Name: "gotoken_refresh_failure_total", Help: "Failed token refreshes."},
}
