package util

import (
	"math/big"

	eth_parameters "github.com/ethereum/go-ethereum/params"
)

// WeiToEther converts the wei amount into the ether
//
// https://github.com/ethereum/go-ethereum/issues/21221
func WeiToEther(wei *big.Int) *big.Float {
	return new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(eth_parameters.Ether))
}

// EtherToWei converts the whole ether amount into wei
func EtherToWei(ether uint64) *big.Int {
	return new(big.Int).Mul(new(big.Int).SetUint64(ether), big.NewInt(eth_parameters.Ether))
}
