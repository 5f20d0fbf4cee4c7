package models

// TokenType is the kind of token router deployed on a chain
type TokenType string

// Token router types supported by the deploy app
const (
	TokenTypeNative                TokenType = "native"
	TokenTypeNativeScaled          TokenType = "nativeScaled"
	TokenTypeCollateral            TokenType = "collateral"
	TokenTypeCollateralVault       TokenType = "collateralVault"
	TokenTypeCollateralVaultRebase TokenType = "collateralVaultRebase"
	TokenTypeCollateralFiat        TokenType = "collateralFiat"
	TokenTypeCollateralURI         TokenType = "collateralUri"
	TokenTypeXERC20                TokenType = "XERC20"
	TokenTypeXERC20Lockbox         TokenType = "XERC20Lockbox"
	TokenTypeSynthetic             TokenType = "synthetic"
	TokenTypeSyntheticRebase       TokenType = "syntheticRebase"
	TokenTypeSyntheticURI          TokenType = "syntheticUri"
)

// TokenTypes lists every valid TokenType
var TokenTypes = []TokenType{
	TokenTypeNative,
	TokenTypeNativeScaled,
	TokenTypeCollateral,
	TokenTypeCollateralVault,
	TokenTypeCollateralVaultRebase,
	TokenTypeCollateralFiat,
	TokenTypeCollateralURI,
	TokenTypeXERC20,
	TokenTypeXERC20Lockbox,
	TokenTypeSynthetic,
	TokenTypeSyntheticRebase,
	TokenTypeSyntheticURI,
}

// RequiresToken indicates if routers of this type wrap an existing token, in which
// case the token address must be configured
func (t TokenType) RequiresToken() bool {
	switch t {
	case TokenTypeCollateral, TokenTypeCollateralVault, TokenTypeCollateralVaultRebase,
		TokenTypeCollateralFiat, TokenTypeCollateralURI, TokenTypeXERC20,
		TokenTypeXERC20Lockbox:
		return true
	}

	return false
}

// TokenRouterConfig is the deploy configuration of a warp route on one chain
type TokenRouterConfig struct {
	// Type of token router
	Type TokenType `json:"type" validate:"required,token_type"`

	// Token is the address of the wrapped token, required by collateral types
	Token string `json:"token,omitempty"`

	// Owner of the router contract
	Owner string `json:"owner" validate:"required"`

	// Mailbox is the address of the Hyperlane mailbox on the chain
	Mailbox string `json:"mailbox" validate:"required"`

	Name     string `json:"name,omitempty"`
	Symbol   string `json:"symbol,omitempty"`
	Decimals *int   `json:"decimals,omitempty" validate:"omitempty,min=0,max=255"`

	// InterchainSecurityModule is an address or an ISM config object
	InterchainSecurityModule interface{} `json:"interchainSecurityModule,omitempty"`

	// Hook is an address or a hook config object
	Hook interface{} `json:"hook,omitempty"`
}

// WarpRouteDeployConfig maps chain names to the router deployed on that chain
type WarpRouteDeployConfig map[string]TokenRouterConfig

// TokenStandard identifies the on-chain implementation of a warp core token
type TokenStandard string

// TokenStandards lists every valid TokenStandard
var TokenStandards = []TokenStandard{
	"ERC20", "ERC4626", "ERC721", "EvmNative",
	"EvmHypNative", "EvmHypNativeScaled", "EvmHypCollateral", "EvmHypOwnerCollateral",
	"EvmHypRebaseCollateral", "EvmHypCollateralFiat", "EvmHypSynthetic",
	"EvmHypSyntheticRebase", "EvmHypXERC20", "EvmHypXERC20Lockbox",
	"SealevelSpl", "SealevelSpl2022", "SealevelNative",
	"SealevelHypNative", "SealevelHypCollateral", "SealevelHypSynthetic",
	"CosmosIcs20", "CosmosIcs721", "CosmosNative", "CosmosIbc",
	"CW20", "CWNative", "CW721", "CwHypNative", "CwHypCollateral", "CwHypSynthetic",
	"CosmNativeHypCollateral", "CosmNativeHypSynthetic",
	"StarknetHypNative", "StarknetHypCollateral", "StarknetHypSynthetic",
}

// TokenConnection links a warp core token to a token on another chain
type TokenConnection struct {
	// Token is the connected token's id, ex., ethereum|arbitrum|0x...
	Token string `json:"token" validate:"required"`
}

// WarpCoreToken is one token of a warp core config
type WarpCoreToken struct {
	ChainName                string            `json:"chainName" validate:"required"`
	Standard                 TokenStandard     `json:"standard" validate:"required,token_standard"`
	Decimals                 *int              `json:"decimals" validate:"required,min=0,max=255"`
	Symbol                   string            `json:"symbol" validate:"required"`
	Name                     string            `json:"name" validate:"required"`
	AddressOrDenom           string            `json:"addressOrDenom,omitempty"`
	CollateralAddressOrDenom string            `json:"collateralAddressOrDenom,omitempty"`
	LogoURI                  string            `json:"logoURI,omitempty"`
	Connections              []TokenConnection `json:"connections,omitempty" validate:"omitempty,dive"`
}

// WarpCoreConfig is the warp core config produced after a warp route is deployed
type WarpCoreConfig struct {
	// Tokens in the warp route, at least one
	Tokens []WarpCoreToken `json:"tokens" validate:"required,min=1,dive"`

	// Options are free form options, ex., interchain fee constants
	Options map[string]interface{} `json:"options,omitempty"`
}
